package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/freshcart/internal/models"
	"github.com/Skotchmaster/freshcart/internal/repo"
	"github.com/Skotchmaster/freshcart/internal/testutil"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	args := m.Called(ctx, topic, key, event)
	return args.Error(0)
}

type fixture struct {
	repo *repo.GormRepo
	user *models.User
	addr *models.Address
	cat  *models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{repo: repo.New(testutil.NewDB(t))}
	f.user = f.newUser(t, "asha@example.com", "9876543210")
	f.addr = f.newAddress(t, f.user.ID, "Pune")

	f.cat = &models.Category{Name: "Fruits", IsActive: true}
	require.NoError(t, f.repo.CreateCategory(context.Background(), f.cat))
	return f
}

func (f *fixture) newUser(t *testing.T, email, phone string) *models.User {
	t.Helper()
	u := &models.User{
		Name:         "Asha",
		Email:        email,
		Phone:        phone,
		PasswordHash: "x",
		Role:         models.RoleUser,
		IsActive:     true,
		TotalSpent:   decimal.Zero,
	}
	require.NoError(t, f.repo.CreateUser(context.Background(), u))
	return u
}

func (f *fixture) newAddress(t *testing.T, userID uuid.UUID, city string) *models.Address {
	t.Helper()
	a := &models.Address{
		UserID:    userID,
		Label:     models.AddressHome,
		Name:      "Asha",
		Phone:     "9876543210",
		Street:    "12 MG Road",
		City:      city,
		State:     "MH",
		Pincode:   "411001",
		IsDefault: true,
	}
	require.NoError(t, f.repo.CreateAddress(context.Background(), a))
	return a
}

func (f *fixture) newProduct(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		OriginalPrice: decimal.RequireFromString(price),
		Unit:          "1 kg",
		CategoryID:    f.cat.ID,
		StockCount:    stock,
		IsActive:      true,
		InStock:       true,
	}
	require.NoError(t, f.repo.CreateProduct(context.Background(), p))
	return p
}

func (f *fixture) reloadProduct(t *testing.T, id uuid.UUID) *models.Product {
	t.Helper()
	p, err := f.repo.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (f *fixture) reloadUser(t *testing.T) *models.User {
	t.Helper()
	u, err := f.repo.GetUserByID(context.Background(), f.user.ID)
	require.NoError(t, err)
	return u
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.repo.DB.Model(model).Count(&n).Error)
	return n
}

func requireKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
