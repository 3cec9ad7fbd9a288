package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/freshcart/internal/models"
	"github.com/Skotchmaster/freshcart/internal/repo"
)

func TestTransactionsListAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newProduct(t, "Apples", "100", 50)
	orders := newOrderService(f, nil)
	svc := &TransactionService{Repo: f.repo}

	_, err := orders.PlaceOrder(ctx, f.user.ID, orderReq(f.addr.ID, models.PaymentCOD, item(p.ID, 2)))
	require.NoError(t, err)
	_, err = orders.PlaceOrder(ctx, f.user.ID, orderReq(f.addr.ID, models.PaymentCard, item(p.ID, 5)))
	require.NoError(t, err)

	list, total, err := svc.List(ctx, repo.TransactionFilter{UserID: f.user.ID, Status: models.TxnCompleted}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, models.PaymentCard, list[0].PaymentMethod)
	require.Contains(t, list[0].Reference, "TXN")

	got, err := svc.Get(ctx, f.user.ID, list[0].ID)
	require.NoError(t, err)
	require.Equal(t, list[0].Reference, got.Reference)
	_, err = svc.Get(ctx, uuid.New(), list[0].ID)
	requireKind(t, err, ErrNotFound)

	stats, err := svc.Stats(ctx, f.user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.TotalTransactions)
	requireDecimal(t, "500", stats.TotalPaid)
	requireDecimal(t, "240", stats.TotalPending)

	_, _, err = svc.List(ctx, repo.TransactionFilter{UserID: f.user.ID, Type: "gift"}, 0, 10)
	requireKind(t, err, ErrValidation)
}
