package payroll

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidText         = "22P02"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetCompensation(ctx context.Context, employeeID string) (Compensation, error) {
	var comp Compensation
	var basic, hra, da, travel, special decimal.NullDecimal
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_code, name, email, role, salary,
           basic, hra, da, travel, special
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&comp.EmployeeID, &comp.EmployeeCode, &comp.Name, &comp.Email, &comp.Role, &comp.GrossSalary,
		&basic, &hra, &da, &travel, &special)
	if err != nil {
		return Compensation{}, mapError(err, ErrEmployeeNotFound)
	}
	comp.Overrides = Overrides{
		ComponentBasic:   FromNullable(basic),
		ComponentHRA:     FromNullable(hra),
		ComponentDA:      FromNullable(da),
		ComponentTravel:  FromNullable(travel),
		ComponentSpecial: FromNullable(special),
	}
	return comp, nil
}

// SetOverride stores an explicit component amount, or clears it when amount is nil.
func (s *Store) SetOverride(ctx context.Context, employeeID, component string, amount *decimal.Decimal) error {
	if _, err := NormalizeComponent(component); err != nil {
		return err
	}
	var value any
	if amount != nil {
		value = *amount
	}
	query, args, err := sq.Update("employees").
		Set(component, value).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": employeeID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, ErrEmployeeNotFound)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) ListAllowances(ctx context.Context, employeeID string) ([]Allowance, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, label, amount, created_at
    FROM allowances
    WHERE employee_id = $1
    ORDER BY created_at, id
  `, employeeID)
	if err != nil {
		return nil, mapError(err, ErrEmployeeNotFound)
	}
	defer rows.Close()

	var out []Allowance
	for rows.Next() {
		var a Allowance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Label, &a.Amount, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) CreateAllowance(ctx context.Context, allowance Allowance) (Allowance, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO allowances (employee_id, label, amount)
    VALUES ($1, $2, $3)
    RETURNING id, created_at
  `, allowance.EmployeeID, allowance.Label, allowance.Amount).Scan(&allowance.ID, &allowance.CreatedAt)
	if err != nil {
		return Allowance{}, mapError(err, ErrEmployeeNotFound)
	}
	return allowance, nil
}

func (s *Store) ListDeductions(ctx context.Context, employeeID string) ([]Deduction, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, reason, amount, month, year, created_at
    FROM deductions
    WHERE employee_id = $1
    ORDER BY created_at, id
  `, employeeID)
	if err != nil {
		return nil, mapError(err, ErrEmployeeNotFound)
	}
	defer rows.Close()

	var out []Deduction
	for rows.Next() {
		var d Deduction
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Reason, &d.Amount, &d.Month, &d.Year, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) GetDeduction(ctx context.Context, deductionID string) (Deduction, error) {
	var d Deduction
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, reason, amount, month, year, created_at
    FROM deductions
    WHERE id = $1
  `, deductionID).Scan(&d.ID, &d.EmployeeID, &d.Reason, &d.Amount, &d.Month, &d.Year, &d.CreatedAt)
	if err != nil {
		return Deduction{}, mapError(err, ErrDeductionNotFound)
	}
	return d, nil
}

func (s *Store) CreateDeduction(ctx context.Context, deduction Deduction) (Deduction, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO deductions (employee_id, reason, amount, month, year)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, created_at
  `, deduction.EmployeeID, deduction.Reason, deduction.Amount, deduction.Month, deduction.Year).Scan(&deduction.ID, &deduction.CreatedAt)
	if err != nil {
		return Deduction{}, mapError(err, ErrEmployeeNotFound)
	}
	return deduction, nil
}

func (s *Store) UpdateDeduction(ctx context.Context, deduction Deduction) (Deduction, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE deductions SET reason = $1, amount = $2
    WHERE id = $3
  `, deduction.Reason, deduction.Amount, deduction.ID)
	if err != nil {
		return Deduction{}, mapError(err, ErrDeductionNotFound)
	}
	if tag.RowsAffected() == 0 {
		return Deduction{}, ErrDeductionNotFound
	}
	return deduction, nil
}

func (s *Store) DeleteDeduction(ctx context.Context, deductionID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM deductions WHERE id = $1", deductionID)
	if err != nil {
		return mapError(err, ErrDeductionNotFound)
	}
	if tag.RowsAffected() == 0 {
		return ErrDeductionNotFound
	}
	return nil
}

// CreatePayment inserts a credit record. The (employee, month, year) unique
// index turns a second credit for the same period into ErrAlreadyCredited.
func (s *Store) CreatePayment(ctx context.Context, payment Payment) (Payment, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payments (employee_id, month, year, amount, status, payment_date)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (employee_id, month, year) DO NOTHING
    RETURNING id
  `, payment.EmployeeID, payment.Month, payment.Year, payment.Amount, payment.Status, payment.PaymentDate).Scan(&payment.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payment{}, ErrAlreadyCredited
	}
	if err != nil {
		return Payment{}, mapError(err, ErrEmployeeNotFound)
	}
	return payment, nil
}

func (s *Store) ListPayments(ctx context.Context, employeeID string) ([]Payment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, month, year, amount, status, payment_date
    FROM payments
    WHERE employee_id = $1
    ORDER BY payment_date DESC, id
  `, employeeID)
	if err != nil {
		return nil, mapError(err, ErrEmployeeNotFound)
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.Amount, &p.Status, &p.PaymentDate); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// mapError turns "no row" style failures into notFound and a duplicate credit
// into ErrAlreadyCredited.
func mapError(err error, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidText, pgForeignKeyViolation:
			return notFound
		case pgUniqueViolation:
			return ErrAlreadyCredited
		}
	}
	return fmt.Errorf("payroll store: %w", err)
}
