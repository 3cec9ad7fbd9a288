package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/freshcart/internal/models"
	"github.com/Skotchmaster/freshcart/internal/repo"
)

type TransactionService struct {
	Repo *repo.GormRepo
}

type TransactionStats struct {
	TotalTransactions int64                  `json:"totalTransactions"`
	TotalPaid         decimal.Decimal        `json:"totalPaid"`
	TotalPending      decimal.Decimal        `json:"totalPending"`
	ByStatus          []repo.StatusAggregate `json:"byStatus"`
}

func (s *TransactionService) List(ctx context.Context, f repo.TransactionFilter, offset, limit int) ([]models.Transaction, int64, error) {
	switch f.Type {
	case "", models.TxnPayment, models.TxnRefund:
	default:
		return nil, 0, validationf("Invalid transaction type")
	}
	switch f.Status {
	case "", models.TxnPending, models.TxnCompleted, models.TxnFailed, models.TxnCancelled:
	default:
		return nil, 0, validationf("Invalid transaction status")
	}
	return s.Repo.ListTransactions(ctx, f, offset, limit)
}

func (s *TransactionService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	t, err := s.Repo.GetTransaction(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err, "Transaction")
	}
	return t, nil
}

func (s *TransactionService) Stats(ctx context.Context, userID uuid.UUID) (*TransactionStats, error) {
	rows, err := s.Repo.TransactionStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &TransactionStats{TotalPaid: decimal.Zero, TotalPending: decimal.Zero, ByStatus: rows}
	for _, r := range rows {
		out.TotalTransactions += r.Count
		switch r.Status {
		case models.TxnCompleted:
			out.TotalPaid = out.TotalPaid.Add(r.Amount)
		case models.TxnPending:
			out.TotalPending = out.TotalPending.Add(r.Amount)
		}
	}
	return out, nil
}
