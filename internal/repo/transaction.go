package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/freshcart/internal/models"
)

type TransactionFilter struct {
	UserID uuid.UUID
	Type   string
	Status string
}

func (r *GormRepo) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	var t models.Transaction
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormRepo) ListTransactions(ctx context.Context, f TransactionFilter, offset, limit int) ([]models.Transaction, int64, error) {
	var (
		txns  []models.Transaction
		total int64
	)
	q := r.DB.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", f.UserID)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// SetOrderTransactionStatus moves the order's ledger rows that are in one
// of from to status.
func (r *GormRepo) SetOrderTransactionStatus(ctx context.Context, orderID uuid.UUID, from []string, status string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Transaction{}).
		Where("order_id = ? AND status IN ?", orderID, from).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *GormRepo) TransactionStats(ctx context.Context, userID uuid.UUID) ([]StatusAggregate, error) {
	var rows []StatusAggregate
	err := r.DB.WithContext(ctx).Model(&models.Transaction{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Where("user_id = ?", userID).
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
