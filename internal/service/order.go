package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/models"
	"github.com/Skotchmaster/freshcart/internal/repo"
	"github.com/Skotchmaster/freshcart/internal/transport"
)

const defaultDeliveryWindow = 45 * time.Minute

type OrderService struct {
	Repo           *repo.GormRepo
	Events         Publisher
	Pricing        Pricing
	DeliveryWindow time.Duration
}

type orderLine struct {
	ProductID uuid.UUID
	Quantity  int
}

type placement struct {
	Address       models.AddressSnapshot
	PaymentMethod string
	PromoCode     string
	Instructions  string
	ReorderedFrom *uuid.UUID
}

type ReorderResult struct {
	Order   *models.Order `json:"order"`
	Skipped []string      `json:"skippedItems"`
}

type OrderStats struct {
	TotalOrders int64                  `json:"totalOrders"`
	TotalSpent  decimal.Decimal        `json:"totalSpent"`
	ByStatus    []repo.StatusAggregate `json:"byStatus"`
}

type Tracking struct {
	OrderNumber       string                `json:"orderNumber"`
	Status            string                `json:"status"`
	EstimatedDelivery time.Time             `json:"estimatedDelivery"`
	DeliveredAt       *time.Time            `json:"deliveredAt,omitempty"`
	Steps             []models.TrackingStep `json:"trackingSteps"`
}

var statusMessages = map[string]string{
	models.OrderPending:        "Order placed",
	models.OrderConfirmed:      "Your order has been confirmed",
	models.OrderPreparing:      "Your order is being prepared",
	models.OrderOutForDelivery: "Your order is out for delivery",
	models.OrderDelivered:      "Your order has been delivered",
	models.OrderCancelled:      "Order cancelled",
}

func (s *OrderService) window() time.Duration {
	if s.DeliveryWindow <= 0 {
		return defaultDeliveryWindow
	}
	return s.DeliveryWindow
}

func randomSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

func newOrderNumber(now time.Time) string {
	return "ORD" + now.Format("20060102") + randomSuffix()
}

func newTxnReference(now time.Time) string {
	return "TXN" + now.Format("20060102150405") + randomSuffix()
}

// mergeLines folds repeated products into one line, keeping first-seen order.
func mergeLines(items []transport.OrderItemRequest) []orderLine {
	idx := make(map[uuid.UUID]int, len(items))
	lines := make([]orderLine, 0, len(items))
	for _, it := range items {
		if i, ok := idx[it.ProductID]; ok {
			lines[i].Quantity += it.Quantity
			continue
		}
		idx[it.ProductID] = len(lines)
		lines = append(lines, orderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines
}

func notifyTx(ctx context.Context, tx *repo.GormRepo, userID uuid.UUID, orderID *uuid.UUID, title, msg string) error {
	return tx.CreateNotification(ctx, &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: msg,
		Type:    models.NotifyOrder,
		OrderID: orderID,
	})
}

func orderEvent(kind string, o *models.Order) map[string]any {
	return map[string]any{
		"type":        kind,
		"orderId":     o.ID,
		"orderNumber": o.OrderNumber,
		"userId":      o.UserID,
		"status":      o.Status,
		"finalAmount": o.FinalAmount,
	}
}

// PlaceOrder prices the items at current catalog prices and writes the
// order, stock, user totals, ledger entry and notification in one
// transaction. Any unavailable item aborts the whole order.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req transport.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, validationf("Order must contain at least one item")
	}
	if !slices.Contains([]string{models.PaymentCOD, models.PaymentCard, models.PaymentUPI, models.PaymentWallet}, req.PaymentMethod) {
		return nil, validationf("Invalid payment method")
	}
	lines := mergeLines(req.Items)
	for _, ln := range lines {
		if ln.Quantity <= 0 {
			return nil, validationf("Quantity must be at least 1")
		}
	}

	var order *models.Order
	err := s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		addr, err := tx.GetAddress(ctx, userID, req.AddressID)
		if err != nil {
			return mapNotFound(err, "Address")
		}
		order, err = s.placeInTx(ctx, tx, userID, lines, placement{
			Address:       addr.Snapshot(),
			PaymentMethod: req.PaymentMethod,
			PromoCode:     strings.TrimSpace(req.PromoCode),
			Instructions:  strings.TrimSpace(req.Instructions),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("order_placed", "order_number", order.OrderNumber, "final_amount", order.FinalAmount.String())
	publish(ctx, s.Events, TopicOrderEvents, order.ID.String(), orderEvent("order_placed", order))
	return order, nil
}

func (s *OrderService) placeInTx(ctx context.Context, tx *repo.GormRepo, userID uuid.UUID, lines []orderLine, pl placement) (*models.Order, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, ln := range lines {
		ids = append(ids, ln.ProductID)
	}
	products, err := tx.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, ln := range lines {
		p, ok := products[ln.ProductID]
		if !ok {
			return nil, validationf("Product %s not found", ln.ProductID)
		}
		if !p.IsActive || !p.InStock {
			return nil, validationf("%s is currently unavailable", p.Name)
		}
		if p.StockCount < ln.Quantity {
			return nil, validationf("Insufficient stock for %s. Available: %d", p.Name, p.StockCount)
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(ln.Quantity)))
		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Unit:      p.Unit,
			Price:     p.Price,
			Quantity:  ln.Quantity,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	q := s.Pricing.Quote(total)
	now := timeNow()
	paymentStatus := models.PaymentStatusCompleted
	if pl.PaymentMethod == models.PaymentCOD {
		paymentStatus = models.PaymentStatusPending
	}

	order := &models.Order{
		OrderNumber:       newOrderNumber(now),
		UserID:            userID,
		Items:             items,
		DeliveryAddress:   pl.Address,
		PaymentMethod:     pl.PaymentMethod,
		PaymentStatus:     paymentStatus,
		Status:            models.OrderPending,
		TotalAmount:       q.TotalAmount,
		DeliveryFee:       q.DeliveryFee,
		Discount:          q.Discount,
		FinalAmount:       q.FinalAmount,
		PromoCode:         pl.PromoCode,
		Instructions:      pl.Instructions,
		CanCancel:         true,
		EstimatedDelivery: now.Add(s.window()),
		ReorderedFrom:     pl.ReorderedFrom,
		TrackingSteps: []models.TrackingStep{{
			Status:    models.OrderPending,
			Message:   statusMessages[models.OrderPending],
			Timestamp: now,
		}},
	}
	if err := tx.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	for _, it := range items {
		ok, err := tx.ReserveStock(ctx, it.ProductID, it.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, validationf("Insufficient stock for %s", it.Name)
		}
	}

	if err := tx.AddOrderTotals(ctx, userID, 1, q.FinalAmount); err != nil {
		return nil, mapNotFound(err, "User")
	}

	if err := tx.CreateTransaction(ctx, &models.Transaction{
		UserID:        userID,
		OrderID:       order.ID,
		Reference:     newTxnReference(now),
		Type:          models.TxnPayment,
		Amount:        q.FinalAmount,
		PaymentMethod: pl.PaymentMethod,
		Status:        paymentStatus,
		Description:   "Payment for order " + order.OrderNumber,
	}); err != nil {
		return nil, err
	}

	if err := notifyTx(ctx, tx, userID, &order.ID, "Order placed",
		fmt.Sprintf("Your order %s of %s has been placed", order.OrderNumber, q.FinalAmount.StringFixed(2))); err != nil {
		return nil, err
	}
	return order, nil
}

// CancelOrder is allowed while canCancel is set and the order is neither
// delivered nor cancelled. Stock, user totals and the ledger are restored in
// the same transaction.
func (s *OrderService) CancelOrder(ctx context.Context, userID, id uuid.UUID, reason string) (*models.Order, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Cancelled by customer"
	}

	var order *models.Order
	err := s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		cur, err := tx.GetOrder(ctx, userID, id)
		if err != nil {
			return mapNotFound(err, "Order")
		}
		if !cur.CanCancel || cur.Status == models.OrderDelivered || cur.Status == models.OrderCancelled {
			return conflictf("Order cannot be cancelled at this stage")
		}

		paymentStatus := models.PaymentStatusCancelled
		if cur.PaymentStatus == models.PaymentStatusCompleted {
			paymentStatus = models.PaymentStatusRefunded
		}
		now := timeNow()
		n, err := tx.CancelOrder(ctx, userID, id, reason, paymentStatus, now)
		if err != nil {
			return err
		}
		if n == 0 {
			return conflictf("Order cannot be cancelled at this stage")
		}

		if err := tx.AddTrackingStep(ctx, &models.TrackingStep{
			OrderID:   id,
			Status:    models.OrderCancelled,
			Message:   statusMessages[models.OrderCancelled] + ": " + reason,
			Timestamp: now,
		}); err != nil {
			return err
		}
		for _, it := range cur.Items {
			if err := tx.ReleaseStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		if err := tx.AddOrderTotals(ctx, userID, -1, cur.FinalAmount.Neg()); err != nil {
			return err
		}
		if _, err := tx.SetOrderTransactionStatus(ctx, id,
			[]string{models.TxnPending, models.TxnCompleted}, models.TxnCancelled); err != nil {
			return err
		}
		if err := notifyTx(ctx, tx, userID, &id, "Order cancelled",
			fmt.Sprintf("Your order %s has been cancelled", cur.OrderNumber)); err != nil {
			return err
		}

		order, err = tx.GetOrder(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicOrderEvents, order.ID.String(), orderEvent("order_cancelled", order))
	return order, nil
}

// Reorder places a new order from a previous one at current prices. Items
// that can no longer be bought are skipped; the delivery address snapshot
// and payment method are reused.
func (s *OrderService) Reorder(ctx context.Context, userID, id uuid.UUID) (*ReorderResult, error) {
	res := &ReorderResult{}
	err := s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		orig, err := tx.GetOrder(ctx, userID, id)
		if err != nil {
			return mapNotFound(err, "Order")
		}
		if !orig.CanReorder {
			return conflictf("Order cannot be reordered yet")
		}

		ids := make([]uuid.UUID, 0, len(orig.Items))
		for _, it := range orig.Items {
			ids = append(ids, it.ProductID)
		}
		products, err := tx.GetProductsByIDs(ctx, ids)
		if err != nil {
			return err
		}

		lines := make([]orderLine, 0, len(orig.Items))
		for _, it := range orig.Items {
			p, ok := products[it.ProductID]
			if !ok || !p.Purchasable(it.Quantity) {
				res.Skipped = append(res.Skipped, it.Name)
				continue
			}
			lines = append(lines, orderLine{ProductID: it.ProductID, Quantity: it.Quantity})
		}
		if len(lines) == 0 {
			return validationf("None of the items from this order are currently available")
		}

		res.Order, err = s.placeInTx(ctx, tx, userID, lines, placement{
			Address:       orig.DeliveryAddress,
			PaymentMethod: orig.PaymentMethod,
			Instructions:  orig.Instructions,
			ReorderedFrom: &orig.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicOrderEvents, res.Order.ID.String(), orderEvent("order_placed", res.Order))
	return res, nil
}

// RateOrder succeeds once per delivered order.
func (s *OrderService) RateOrder(ctx context.Context, userID, id uuid.UUID, req transport.RateOrderRequest) (*models.Order, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, validationf("Rating must be between 1 and 5")
	}

	var order *models.Order
	err := s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		cur, err := tx.GetOrder(ctx, userID, id)
		if err != nil {
			return mapNotFound(err, "Order")
		}
		if cur.Rating != nil {
			return conflictf("Order has already been rated")
		}
		if !cur.CanRate || cur.Status != models.OrderDelivered {
			return conflictf("Only delivered orders can be rated")
		}

		n, err := tx.RateOrder(ctx, userID, id, req.Rating, strings.TrimSpace(req.Review), timeNow())
		if err != nil {
			return err
		}
		if n == 0 {
			return conflictf("Order has already been rated")
		}
		if err := notifyTx(ctx, tx, userID, &id, "Thanks for your feedback",
			fmt.Sprintf("You rated order %s %d/5", cur.OrderNumber, req.Rating)); err != nil {
			return err
		}

		order, err = tx.GetOrder(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus moves an order forward along OrderFlow.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateOrderStatusRequest) (*models.Order, error) {
	target := slices.Index(models.OrderFlow, req.Status)
	if target < 0 {
		return nil, validationf("Invalid order status")
	}

	var order *models.Order
	err := s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		cur, err := tx.GetOrder(ctx, uuid.Nil, id)
		if err != nil {
			return mapNotFound(err, "Order")
		}
		if cur.Status == models.OrderCancelled || cur.Status == models.OrderDelivered {
			return conflictf("Order is already %s", cur.Status)
		}
		if target <= slices.Index(models.OrderFlow, cur.Status) {
			return conflictf("Cannot move order from %s to %s", cur.Status, req.Status)
		}

		now := timeNow()
		fields := map[string]any{
			"status":     req.Status,
			"can_cancel": req.Status == models.OrderConfirmed,
		}
		if req.Status == models.OrderDelivered {
			fields["delivered_at"] = now
			fields["can_rate"] = true
			fields["can_reorder"] = true
			fields["payment_status"] = models.PaymentStatusCompleted
		}
		n, err := tx.TransitionOrder(ctx, id, cur.Status, fields)
		if err != nil {
			return err
		}
		if n == 0 {
			return conflictf("Order was updated by another request")
		}

		msg := strings.TrimSpace(req.Message)
		if msg == "" {
			msg = statusMessages[req.Status]
		}
		if err := tx.AddTrackingStep(ctx, &models.TrackingStep{
			OrderID:   id,
			Status:    req.Status,
			Message:   msg,
			Timestamp: now,
		}); err != nil {
			return err
		}
		if req.Status == models.OrderDelivered {
			if _, err := tx.SetOrderTransactionStatus(ctx, id,
				[]string{models.TxnPending}, models.TxnCompleted); err != nil {
				return err
			}
		}
		if err := notifyTx(ctx, tx, cur.UserID, &id, "Order "+cur.OrderNumber, msg); err != nil {
			return err
		}

		order, err = tx.GetOrder(ctx, uuid.Nil, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicOrderEvents, order.ID.String(), orderEvent("order_status_changed", order))
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err, "Order")
	}
	return o, nil
}

func (s *OrderService) Track(ctx context.Context, userID, id uuid.UUID) (*Tracking, error) {
	o, err := s.GetOrder(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &Tracking{
		OrderNumber:       o.OrderNumber,
		Status:            o.Status,
		EstimatedDelivery: o.EstimatedDelivery,
		DeliveredAt:       o.DeliveredAt,
		Steps:             o.TrackingSteps,
	}, nil
}

func validOrderStatus(status string) bool {
	return status == "" || status == models.OrderCancelled || slices.Contains(models.OrderFlow, status)
}

func (s *OrderService) ListOrders(ctx context.Context, f repo.OrderFilter, offset, limit int) ([]models.Order, int64, error) {
	if !validOrderStatus(f.Status) {
		return nil, 0, validationf("Invalid order status")
	}
	return s.Repo.ListOrders(ctx, f, offset, limit)
}

func (s *OrderService) Stats(ctx context.Context, userID uuid.UUID) (*OrderStats, error) {
	rows, err := s.Repo.OrderStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &OrderStats{TotalSpent: decimal.Zero, ByStatus: rows}
	for _, r := range rows {
		out.TotalOrders += r.Count
		if r.Status != models.OrderCancelled {
			out.TotalSpent = out.TotalSpent.Add(r.Amount)
		}
	}
	return out, nil
}
