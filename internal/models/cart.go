package models

import "github.com/shopspring/decimal"

// CartLine is one confirmed product+quantity pair. Lines are immutable once
// added; the cart only ever appends.
type CartLine struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
}

// Total returns quantity × unit price for the line.
func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
