package service

import (
	"github.com/shopspring/decimal"
)

// Pricing holds the delivery fee rule applied to every order.
type Pricing struct {
	DeliveryFee           decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		DeliveryFee:           decimal.NewFromInt(40),
		FreeDeliveryThreshold: decimal.NewFromInt(500),
	}
}

type Quote struct {
	TotalAmount decimal.Decimal
	DeliveryFee decimal.Decimal
	Discount    decimal.Decimal
	FinalAmount decimal.Decimal
}

// Quote prices an order total. Promo codes are recorded on the order but
// carry no discount yet.
func (p Pricing) Quote(total decimal.Decimal) Quote {
	fee := p.DeliveryFee
	if total.GreaterThanOrEqual(p.FreeDeliveryThreshold) {
		fee = decimal.Zero
	}
	discount := decimal.Zero
	return Quote{
		TotalAmount: total,
		DeliveryFee: fee,
		Discount:    discount,
		FinalAmount: total.Add(fee).Sub(discount),
	}
}
