package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/freshcart/internal/models"
	"github.com/Skotchmaster/freshcart/internal/repo"
	"github.com/Skotchmaster/freshcart/internal/testutil"
)

func newRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return repo.New(testutil.NewDB(t))
}

func newProduct(t *testing.T, r *repo.GormRepo, stock int, active bool) *models.Product {
	t.Helper()
	ctx := context.Background()
	cat := &models.Category{Name: "Dairy " + uuid.NewString()[:8], IsActive: true}
	require.NoError(t, r.CreateCategory(ctx, cat))

	p := &models.Product{
		Name:          "Milk",
		Price:         decimal.NewFromInt(50),
		OriginalPrice: decimal.NewFromInt(50),
		Unit:          "1 l",
		CategoryID:    cat.ID,
		StockCount:    stock,
		IsActive:      true,
		InStock:       true,
	}
	require.NoError(t, r.CreateProduct(ctx, p))
	if !active {
		require.NoError(t, r.UpdateProduct(ctx, p.ID, map[string]any{"is_active": false}))
	}
	return p
}

func newOrder(t *testing.T, r *repo.GormRepo, userID uuid.UUID, status string) *models.Order {
	t.Helper()
	o := &models.Order{
		OrderNumber:       "FC" + uuid.NewString()[:12],
		UserID:            userID,
		PaymentMethod:     models.PaymentCard,
		PaymentStatus:     models.PaymentStatusCompleted,
		Status:            status,
		TotalAmount:       decimal.NewFromInt(100),
		DeliveryFee:       decimal.NewFromInt(40),
		Discount:          decimal.Zero,
		FinalAmount:       decimal.NewFromInt(140),
		CanCancel:         status != models.OrderDelivered,
		CanRate:           status == models.OrderDelivered,
		EstimatedDelivery: time.Now().Add(time.Hour),
	}
	require.NoError(t, r.CreateOrder(context.Background(), o))
	return o
}

func TestReserveStock(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	p := newProduct(t, r, 2, true)

	ok, err := r.ReserveStock(ctx, p.ID, 3)
	require.NoError(t, err)
	require.False(t, ok)
	got, err := r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.StockCount)
	require.Equal(t, 0, got.TotalSold)

	ok, err = r.ReserveStock(ctx, p.ID, 2)
	require.NoError(t, err)
	require.True(t, ok)
	got, err = r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.StockCount)
	require.Equal(t, 2, got.TotalSold)

	ok, err = r.ReserveStock(ctx, p.ID, 1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReserveStockInactiveProduct(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	p := newProduct(t, r, 10, false)

	ok, err := r.ReserveStock(ctx, p.ID, 1)
	require.NoError(t, err)
	require.False(t, ok)

	got, err := r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 10, got.StockCount)
}

func TestCancelOrderOnlyOnce(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	userID := uuid.New()
	o := newOrder(t, r, userID, models.OrderPending)

	n, err := r.CancelOrder(ctx, uuid.New(), o.ID, "not mine", models.PaymentStatusRefunded, time.Now())
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	n, err = r.CancelOrder(ctx, userID, o.ID, "changed my mind", models.PaymentStatusRefunded, time.Now())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = r.CancelOrder(ctx, userID, o.ID, "again", models.PaymentStatusRefunded, time.Now())
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	got, err := r.GetOrder(ctx, userID, o.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderCancelled, got.Status)
	require.Equal(t, "changed my mind", got.CancelReason)
}

func TestRateOrderOnlyOnce(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	pending := newOrder(t, r, userID, models.OrderPending)
	n, err := r.RateOrder(ctx, userID, pending.ID, 5, "", time.Now())
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	o := newOrder(t, r, userID, models.OrderDelivered)
	n, err = r.RateOrder(ctx, userID, o.ID, 4, "fresh", time.Now())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = r.RateOrder(ctx, userID, o.ID, 1, "changed", time.Now())
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	got, err := r.GetOrder(ctx, userID, o.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	require.Equal(t, 4, *got.Rating)
	require.Equal(t, "fresh", got.Review)
}

func TestTransitionOrderStaleFrom(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	userID := uuid.New()
	o := newOrder(t, r, userID, models.OrderPending)

	n, err := r.TransitionOrder(ctx, o.ID, models.OrderPending, map[string]any{"status": models.OrderConfirmed})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = r.TransitionOrder(ctx, o.ID, models.OrderPending, map[string]any{"status": models.OrderCancelled})
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	got, err := r.GetOrder(ctx, userID, o.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderConfirmed, got.Status)
}
