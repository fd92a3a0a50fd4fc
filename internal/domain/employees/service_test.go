package employees

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	StoreAPI
	created  []Employee
	listed   ListQuery
	total    int64
	patched  Patch
	patchErr error
}

func (f *fakeStore) Create(_ context.Context, emp Employee) (Employee, error) {
	emp.ID = "emp-1"
	f.created = append(f.created, emp)
	return emp, nil
}

func (f *fakeStore) List(_ context.Context, q ListQuery) ([]Employee, int64, error) {
	f.listed = q
	return []Employee{{ID: "emp-1"}}, f.total, nil
}

func (f *fakeStore) Update(_ context.Context, id string, patch Patch) (Employee, error) {
	f.patched = patch
	return Employee{ID: id}, f.patchErr
}

func TestServiceCreateValidates(t *testing.T) {
	svc := NewService(&fakeStore{})
	ctx := context.Background()

	tests := []struct {
		name string
		in   Input
		want error
	}{
		{name: "missing name", in: Input{Email: "a@b.co", Role: "HR", Salary: "1"}, want: ErrInvalidName},
		{name: "bad email", in: Input{Name: "A", Email: "not-an-email", Role: "HR", Salary: "1"}, want: ErrInvalidEmail},
		{name: "missing role", in: Input{Name: "A", Email: "a@b.co", Salary: "1"}, want: ErrInvalidRole},
		{name: "negative salary", in: Input{Name: "A", Email: "a@b.co", Role: "HR", Salary: "-10"}, want: ErrInvalidSalary},
		{name: "non numeric salary", in: Input{Name: "A", Email: "a@b.co", Role: "HR", Salary: "ten"}, want: ErrInvalidSalary},
		{name: "salary beyond column", in: Input{Name: "A", Email: "a@b.co", Role: "HR", Salary: "1e13"}, want: ErrInvalidSalary},
		{name: "salary sub cent", in: Input{Name: "A", Email: "a@b.co", Role: "HR", Salary: "0.005"}, want: ErrInvalidSalary},
		{name: "salary huge exponent", in: Input{Name: "A", Email: "a@b.co", Role: "HR", Salary: "1e20000000"}, want: ErrInvalidSalary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestServiceCreateNormalizes(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	emp, err := svc.Create(context.Background(), Input{Name: " Asha Rao ", Email: " Asha@Example.com ", Role: "Accountant", Salary: "60000"})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", emp.Name)
	assert.Equal(t, "asha@example.com", emp.Email)
	assert.Equal(t, "60000", emp.Salary.String())
	assert.Len(t, emp.EmployeeCode, 36)
	assert.Len(t, emp.ShortCode(), 8)
}

func TestServiceListPaging(t *testing.T) {
	store := &fakeStore{total: 11}
	svc := NewService(store)

	page, err := svc.List(context.Background(), ListQuery{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(11), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, DefaultLimit, store.listed.Limit)
	assert.Equal(t, DefaultSort, store.listed.Sort)
}

func TestServiceUpdateValidatesPatch(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.Update(ctx, "emp-1", Patch{})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	blank := "  "
	_, err = svc.Update(ctx, "emp-1", Patch{Role: &blank})
	assert.ErrorIs(t, err, ErrInvalidRole)

	for _, bad := range []decimal.Decimal{
		decimal.NewFromInt(-1),
		decimal.New(1, 13),
		decimal.New(5, -3),
		decimal.New(1, 20000000),
	} {
		_, err = svc.Update(ctx, "emp-1", Patch{Salary: &bad})
		assert.ErrorIs(t, err, ErrInvalidSalary, bad.Exponent())
	}
	assert.Nil(t, store.patched.Salary)

	name := " Ravi "
	raise := decimal.NewFromInt(70000)
	_, err = svc.Update(ctx, "emp-1", Patch{Name: &name, Salary: &raise})
	require.NoError(t, err)
	require.NotNil(t, store.patched.Name)
	assert.Equal(t, "Ravi", *store.patched.Name)
	assert.True(t, store.patched.Salary.Equal(raise))
}
