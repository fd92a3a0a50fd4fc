package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	pgUniqueViolation = "23505"
	pgInvalidText     = "22P02"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(&emp.ID, &emp.EmployeeCode, &emp.Name, &emp.Email, &emp.Role, &emp.Salary, &emp.CreatedAt, &emp.UpdatedAt)
	return emp, err
}

func (s *Store) List(ctx context.Context, q ListQuery) ([]Employee, int64, error) {
	countSQL, countArgs, err := q.CountSQL()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := s.DB.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	query, args, err := q.SelectSQL()
	if err != nil {
		return nil, 0, err
	}
	list, err := s.query(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (s *Store) ListAll(ctx context.Context, q ListQuery) ([]Employee, error) {
	query, args, err := q.ExportSQL()
	if err != nil {
		return nil, err
	}
	return s.query(ctx, query, args)
}

func (s *Store) query(ctx context.Context, query string, args []any) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	query, args, err := psql.Select(columns...).From("employees").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Employee{}, err
	}
	emp, err := scanEmployee(s.DB.QueryRow(ctx, query, args...))
	if err != nil {
		return Employee{}, mapError(err)
	}
	return emp, nil
}

func (s *Store) Create(ctx context.Context, emp Employee) (Employee, error) {
	query, args, err := psql.Insert("employees").
		Columns("employee_code", "name", "email", "role", "salary").
		Values(emp.EmployeeCode, emp.Name, emp.Email, emp.Role, emp.Salary).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return Employee{}, err
	}
	created, err := scanEmployee(s.DB.QueryRow(ctx, query, args...))
	if err != nil {
		return Employee{}, mapError(err)
	}
	return created, nil
}

// Update applies patch in one transaction. A salary change is recorded in the
// increment history alongside the update.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (Employee, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Employee{}, err
	}
	defer tx.Rollback(ctx)

	var previous decimal.Decimal
	if err := tx.QueryRow(ctx, `SELECT salary FROM employees WHERE id = $1 FOR UPDATE`, id).Scan(&previous); err != nil {
		return Employee{}, mapError(err)
	}

	update := psql.Update("employees").Set("updated_at", sq.Expr("now()")).Where(sq.Eq{"id": id})
	if patch.Name != nil {
		update = update.Set("name", *patch.Name)
	}
	if patch.Email != nil {
		update = update.Set("email", *patch.Email)
	}
	if patch.Role != nil {
		update = update.Set("role", *patch.Role)
	}
	if patch.Salary != nil {
		update = update.Set("salary", *patch.Salary)
	}
	query, args, err := update.Suffix("RETURNING " + joinColumns()).ToSql()
	if err != nil {
		return Employee{}, err
	}
	updated, err := scanEmployee(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return Employee{}, mapError(err)
	}

	if patch.Salary != nil && !patch.Salary.Equal(previous) {
		if _, err := tx.Exec(ctx, `
      INSERT INTO increment_history (employee_id, previous_salary, new_salary)
      VALUES ($1, $2, $3)
    `, id, previous, *patch.Salary); err != nil {
			return Employee{}, mapError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Employee{}, err
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(*), COALESCE(SUM(salary), 0), COALESCE(AVG(salary), 0)
    FROM employees
  `).Scan(&stats.TotalEmployees, &stats.TotalSalary, &stats.AverageSalary)
	if err != nil {
		return Stats{}, mapError(err)
	}
	stats.AverageSalary = stats.AverageSalary.Round(2)

	var top string
	err = s.DB.QueryRow(ctx, `SELECT name FROM employees ORDER BY salary DESC, created_at LIMIT 1`).Scan(&top)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return Stats{}, mapError(err)
	default:
		stats.HighestPaidEmployee = &top
	}
	return stats, nil
}

func (s *Store) History(ctx context.Context, id string) ([]IncrementRecord, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, previous_salary, new_salary, increment_date
    FROM increment_history
    WHERE employee_id = $1
    ORDER BY increment_date DESC, id
  `, id)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []IncrementRecord{}
	for rows.Next() {
		var rec IncrementRecord
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.PreviousSalary, &rec.NewSalary, &rec.IncrementDate); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidText:
			return ErrNotFound
		case pgUniqueViolation:
			return ErrEmailTaken
		}
	}
	return fmt.Errorf("employees store: %w", err)
}
