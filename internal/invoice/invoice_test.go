package invoice

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/models"
)

func sampleLines() []models.CartLine {
	return []models.CartLine{
		{ProductID: 1, Name: "Widget", Quantity: 3, UnitPrice: decimal.RequireFromString("10.00")},
		{ProductID: 2, Name: "Gadget", Quantity: 2, UnitPrice: decimal.RequireFromString("25.00")},
	}
}

func TestComputeTotals(t *testing.T) {
	got := ComputeTotals(sampleLines())

	require.Equal(t, "80.00", got.Subtotal.StringFixed(2))
	require.Equal(t, "7.20", got.CGST.StringFixed(2))
	require.Equal(t, "7.20", got.SGST.StringFixed(2))
	require.Equal(t, "94.40", got.Total.StringFixed(2))
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	for _, lines := range [][]models.CartLine{nil, {}} {
		got := ComputeTotals(lines)
		require.True(t, got.Subtotal.IsZero())
		require.True(t, got.CGST.IsZero())
		require.True(t, got.SGST.IsZero())
		require.True(t, got.Total.IsZero())
	}
}

func TestComputeTotalsIsPure(t *testing.T) {
	lines := sampleLines()
	first := ComputeTotals(lines)
	second := ComputeTotals(lines)
	require.True(t, first.Total.Equal(second.Total))

	reversed := []models.CartLine{lines[1], lines[0]}
	swapped := ComputeTotals(reversed)
	require.True(t, first.Subtotal.Equal(swapped.Subtotal))
	require.True(t, first.Total.Equal(swapped.Total))
}

func TestComputeTotalsTaxSplit(t *testing.T) {
	got := ComputeTotals(sampleLines())

	require.True(t, got.CGST.Equal(got.SGST), "CGST and SGST halves must match")
	require.True(t, got.Total.Equal(got.Subtotal.Add(got.CGST).Add(got.SGST)))
}

func TestBuild(t *testing.T) {
	issued := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	lines := sampleLines()

	inv := Build(lines, issued)
	require.Regexp(t, regexp.MustCompile(`^INV-\d{4}$`), inv.Number)
	require.Equal(t, issued, inv.IssuedAt)
	require.Len(t, inv.Lines, 2)
	require.Equal(t, "94.40", inv.Totals.Total.StringFixed(2))

	// the invoice owns its lines; caller mutations must not show through
	lines[0].Name = "mutated"
	require.Equal(t, "Widget", inv.Lines[0].Name)
}

func TestBuildEmpty(t *testing.T) {
	inv := Build(nil, time.Now())
	require.Empty(t, inv.Lines)
	require.True(t, inv.Totals.Total.IsZero())
}
