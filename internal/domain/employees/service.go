package employees

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"paydesk/internal/domain/money"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, q ListQuery) (Page, error) {
	q = q.Normalize()
	list, total, err := s.store.List(ctx, q)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Employees:   list,
		TotalItems:  total,
		TotalPages:  TotalPages(total, q.Limit),
		CurrentPage: q.Page,
	}, nil
}

// Export returns every employee matching the filters of q, ignoring paging.
func (s *Service) Export(ctx context.Context, q ListQuery) ([]Employee, error) {
	return s.store.ListAll(ctx, q.Normalize())
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (Employee, error) {
	emp, err := newEmployee(in)
	if err != nil {
		return Employee{}, err
	}
	return s.store.Create(ctx, emp)
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (Employee, error) {
	patch, err := cleanPatch(patch)
	if err != nil {
		return Employee{}, err
	}
	return s.store.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.store.Stats(ctx)
}

func (s *Service) History(ctx context.Context, id string) ([]IncrementRecord, error) {
	return s.store.History(ctx, id)
}

func newEmployee(in Input) (Employee, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Employee{}, ErrInvalidName
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return Employee{}, err
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		return Employee{}, ErrInvalidRole
	}
	salary, err := ParseSalary(in.Salary)
	if err != nil {
		return Employee{}, err
	}
	return Employee{
		EmployeeCode: uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         role,
		Salary:       salary,
	}, nil
}

func cleanPatch(p Patch) (Patch, error) {
	if p.Empty() {
		return Patch{}, ErrEmptyPatch
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return Patch{}, ErrInvalidName
		}
		p.Name = &name
	}
	if p.Email != nil {
		email, err := normalizeEmail(*p.Email)
		if err != nil {
			return Patch{}, err
		}
		p.Email = &email
	}
	if p.Role != nil {
		role := strings.TrimSpace(*p.Role)
		if role == "" {
			return Patch{}, ErrInvalidRole
		}
		p.Role = &role
	}
	if p.Salary != nil {
		salary, ok := money.Check(*p.Salary)
		if !ok {
			return Patch{}, ErrInvalidSalary
		}
		p.Salary = &salary
	}
	return p, nil
}

// ParseSalary accepts a non-negative amount that fits the salary column.
func ParseSalary(raw string) (decimal.Decimal, error) {
	salary, ok := money.Parse(raw)
	if !ok {
		return decimal.Zero, ErrInvalidSalary
	}
	return salary, nil
}

func normalizeEmail(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return "", ErrInvalidEmail
	}
	return value, nil
}
