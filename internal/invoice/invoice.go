// Package invoice computes tax totals for a cart and prepares the printable
// invoice document. Totals are always re-derived from the lines rather than
// kept as running sums, so the rendered figures cannot drift from the cart.
package invoice

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/models"
)

// GST split applied to the subtotal: 9% CGST + 9% SGST, 18% combined.
// Illustrative rates, not tax advice.
const (
	CGSTRate = 9
	SGSTRate = 9
)

type Totals struct {
	Subtotal decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	Total    decimal.Decimal
}

// Invoice is a derived, unpersisted document. It exists only for the render
// and print of one handoff; the display number is not a durable identifier.
type Invoice struct {
	Number   string
	IssuedAt time.Time
	Lines    []models.CartLine
	Totals   Totals
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals derives subtotal, tax components, and grand total from the
// lines. It is pure: same lines in, same totals out, and an empty or nil
// slice yields all zeros rather than an error.
func ComputeTotals(lines []models.CartLine) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}
	cgst := subtotal.Mul(decimal.NewFromInt(CGSTRate)).Div(hundred)
	sgst := subtotal.Mul(decimal.NewFromInt(SGSTRate)).Div(hundred)
	return Totals{
		Subtotal: subtotal,
		CGST:     cgst,
		SGST:     sgst,
		Total:    subtotal.Add(cgst).Add(sgst),
	}
}

// Build assembles the invoice from the handed-over cart copy. The lines slice
// is copied again so the invoice stays immutable even if the caller reuses
// its slice.
func Build(lines []models.CartLine, issuedAt time.Time) Invoice {
	cp := make([]models.CartLine, len(lines))
	copy(cp, lines)
	return Invoice{
		Number:   fmt.Sprintf("INV-%04d", rand.Intn(10000)),
		IssuedAt: issuedAt,
		Lines:    cp,
		Totals:   ComputeTotals(cp),
	}
}
