package employees

import (
	"math"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const (
	DefaultLimit = 5
	MaxLimit     = 100
	DefaultSort  = "createdAt_DESC"
	// MaxPage keeps (Page-1)*Limit inside int64.
	MaxPage = math.MaxInt64/MaxLimit + 1
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{"id", "employee_code", "name", "email", "role", "salary", "created_at", "updated_at"}

var sortColumns = map[string]string{
	"name":      "name",
	"salary":    "salary",
	"createdAt": "created_at",
	"role":      "role",
	"email":     "email",
}

// ListQuery describes one page of the roster.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Role   string
	Sort   string
}

// Normalize fills defaults and clamps paging.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Role = strings.TrimSpace(q.Role)
	if _, ok := parseSort(q.Sort); !ok {
		q.Sort = DefaultSort
	}
	return q
}

func (q ListQuery) Offset() uint64 {
	return uint64((q.Page - 1) * q.Limit)
}

// parseSort maps "<field>_<ASC|DESC>" onto an ORDER BY term.
func parseSort(raw string) (string, bool) {
	field, dir, ok := strings.Cut(strings.TrimSpace(raw), "_")
	if !ok {
		return "", false
	}
	column, ok := sortColumns[field]
	if !ok {
		return "", false
	}
	dir = strings.ToUpper(dir)
	if dir != "ASC" && dir != "DESC" {
		return "", false
	}
	return column + " " + dir, true
}

func (q ListQuery) predicate() sq.And {
	and := sq.And{}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		and = append(and, sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
			sq.ILike{"role": pattern},
		})
	}
	if q.Role != "" {
		and = append(and, sq.Eq{"role": q.Role})
	}
	return and
}

func (q ListQuery) filtered(b sq.SelectBuilder) sq.SelectBuilder {
	if pred := q.predicate(); len(pred) > 0 {
		b = b.Where(pred)
	}
	return b
}

// SelectSQL builds the page query. q must be normalized.
func (q ListQuery) SelectSQL() (string, []any, error) {
	order, _ := parseSort(q.Sort)
	return q.filtered(psql.Select(columns...).From("employees")).
		OrderBy(order, "id").
		Limit(uint64(q.Limit)).
		Offset(q.Offset()).
		ToSql()
}

// CountSQL counts every row the filters match, ignoring paging.
func (q ListQuery) CountSQL() (string, []any, error) {
	return q.filtered(psql.Select("COUNT(*)").From("employees")).ToSql()
}

// ExportSQL selects every matching row in sort order.
func (q ListQuery) ExportSQL() (string, []any, error) {
	order, _ := parseSort(q.Sort)
	return q.filtered(psql.Select(columns...).From("employees")).
		OrderBy(order, "id").
		ToSql()
}

// TotalPages is the page count for total rows at limit rows per page.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
