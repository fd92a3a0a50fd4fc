package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ActionEmployeeCreated  = "employee.created"
	ActionEmployeeUpdated  = "employee.updated"
	ActionEmployeeDeleted  = "employee.deleted"
	ActionComponentSet     = "component.set"
	ActionComponentCleared = "component.cleared"
	ActionAllowanceAdded   = "allowance.added"
	ActionDeductionAdded   = "deduction.added"
	ActionDeductionUpdated = "deduction.updated"
	ActionDeductionRemoved = "deduction.removed"
	ActionSalaryCredited   = "salary.credited"
	ActionPayslipQueued    = "payslip.queued"

	EntityEmployee  = "employee"
	EntityDeduction = "deduction"
	EntityPayment   = "payment"
)

// Entry is one mutation to be recorded.
type Entry struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	RequestID  string
	IP         string
	Details    any
}

type Event struct {
	ID         string          `json:"id"`
	ActorID    *string         `json:"actorId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	IP         string          `json:"ip"`
	CreatedAt  time.Time       `json:"createdAt"`
	Details    json.RawMessage `json:"details,omitempty"`
}

type Filter struct {
	Action     string
	EntityType string
	EntityID   string
	ActorUser  string
}

// Recorder is what request handlers write audit entries through.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, entry Entry) error {
	var details []byte
	if entry.Details != nil {
		payload, err := json.Marshal(entry.Details)
		if err != nil {
			return err
		}
		details = payload
	}
	var actor any
	if entry.ActorID != "" {
		actor = entry.ActorID
	}

	query, args, err := psql.Insert("audit_events").
		Columns("actor_user_id", "action", "entity_type", "entity_id", "details_json", "request_id", "ip").
		Values(actor, entry.Action, entry.EntityType, entry.EntityID, details, entry.RequestID, entry.IP).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, query, args...)
	return err
}

func (f Filter) predicate() sq.And {
	where := sq.And{}
	if v := strings.TrimSpace(f.Action); v != "" {
		where = append(where, sq.Eq{"action": v})
	}
	if v := strings.TrimSpace(f.EntityType); v != "" {
		where = append(where, sq.Eq{"entity_type": v})
	}
	if v := strings.TrimSpace(f.EntityID); v != "" {
		where = append(where, sq.Eq{"entity_id": v})
	}
	if v := strings.TrimSpace(f.ActorUser); v != "" {
		where = append(where, sq.Eq{"actor_user_id::text": v})
	}
	return where
}

func (f Filter) filtered(b sq.SelectBuilder) sq.SelectBuilder {
	if pred := f.predicate(); len(pred) > 0 {
		b = b.Where(pred)
	}
	return b
}

// ListSQL builds the newest-first page query for f.
func (f Filter) ListSQL(includeDetails bool, limit, offset int) (string, []any, error) {
	cols := []string{"id", "actor_user_id::text", "action", "entity_type", "entity_id", "request_id", "ip", "created_at"}
	if includeDetails {
		cols = append(cols, "details_json")
	}
	return f.filtered(psql.Select(cols...).From("audit_events")).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

func (f Filter) CountSQL() (string, []any, error) {
	return f.filtered(psql.Select("COUNT(1)").From("audit_events")).ToSql()
}

func (s *Service) Count(ctx context.Context, filter Filter) (int64, error) {
	query, args, err := filter.CountSQL()
	if err != nil {
		return 0, err
	}
	var total int64
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Service) List(ctx context.Context, filter Filter, includeDetails bool, limit, offset int) ([]Event, error) {
	query, args, err := filter.ListSQL(includeDetails, limit, offset)
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		var evt Event
		dest := []any{&evt.ID, &evt.ActorID, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.RequestID, &evt.IP, &evt.CreatedAt}
		if includeDetails {
			dest = append(dest, &evt.Details)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}
