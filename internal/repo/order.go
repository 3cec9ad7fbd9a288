package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/freshcart/internal/models"
)

type OrderFilter struct {
	UserID uuid.UUID
	Status string
}

func withOrderDetails(q *gorm.DB) *gorm.DB {
	return q.Preload("Items").
		Preload("TrackingSteps", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		})
}

// CreateOrder inserts the order together with its items and tracking steps.
func (r *GormRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	return r.DB.WithContext(ctx).Create(o).Error
}

// GetOrder finds an order; a nil userID skips the ownership filter.
func (r *GormRepo) GetOrder(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	q := withOrderDetails(r.DB.WithContext(ctx)).Where("id = ?", id)
	if userID != uuid.Nil {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter, offset, limit int) ([]models.Order, int64, error) {
	var (
		orders []models.Order
		total  int64
	)
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if f.UserID != uuid.Nil {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := withOrderDetails(q).Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CancelOrder flips a cancellable order to cancelled. Zero rows means the
// order is missing, not owned, or no longer cancellable.
func (r *GormRepo) CancelOrder(ctx context.Context, userID, id uuid.UUID, reason, paymentStatus string, at time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND user_id = ? AND can_cancel = ? AND status NOT IN ?",
			id, userID, true, []string{models.OrderDelivered, models.OrderCancelled}).
		Updates(map[string]any{
			"status":         models.OrderCancelled,
			"can_cancel":     false,
			"can_reorder":    true,
			"can_rate":       false,
			"cancel_reason":  reason,
			"cancelled_at":   at,
			"payment_status": paymentStatus,
		})
	return res.RowsAffected, res.Error
}

// RateOrder records a rating only once, on a delivered order.
func (r *GormRepo) RateOrder(ctx context.Context, userID, id uuid.UUID, rating int, review string, at time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND user_id = ? AND can_rate = ? AND status = ? AND rating IS NULL",
			id, userID, true, models.OrderDelivered).
		Updates(map[string]any{
			"rating":   rating,
			"review":   review,
			"rated_at": at,
			"can_rate": false,
		})
	return res.RowsAffected, res.Error
}

// TransitionOrder applies fields only while the order is still in from.
func (r *GormRepo) TransitionOrder(ctx context.Context, id uuid.UUID, from string, fields map[string]any) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *GormRepo) AddTrackingStep(ctx context.Context, step *models.TrackingStep) error {
	return r.DB.WithContext(ctx).Create(step).Error
}

func (r *GormRepo) OrderStats(ctx context.Context, userID uuid.UUID) ([]StatusAggregate, error) {
	var rows []StatusAggregate
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(final_amount), 0) AS amount").
		Where("user_id = ?", userID).
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
