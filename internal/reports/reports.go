// Package reports computes the aggregate figures shown on the dashboard and
// reports screens. Everything here is a pure derivation over a snapshot the
// caller already fetched.
package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/models"
)

type Stats struct {
	TotalProducts  int
	TotalStock     int
	LowStockCount  int
	HealthyCount   int
	TotalSuppliers int
	InventoryValue decimal.Decimal
}

// Compute derives the headline stats from product and supplier snapshots.
// Inventory value is Σ stock × price.
func Compute(products []models.Product, suppliers []models.Supplier) Stats {
	st := Stats{
		TotalProducts:  len(products),
		TotalSuppliers: len(suppliers),
		InventoryValue: decimal.Zero,
	}
	for _, p := range products {
		st.TotalStock += p.Stock
		if p.LowStock() {
			st.LowStockCount++
		} else {
			st.HealthyCount++
		}
		st.InventoryValue = st.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return st
}

// StockBar is one row of the stock-level chart.
type StockBar struct {
	Name     string
	Stock    int
	MinStock int
}

// TopByStock returns up to n products ordered by descending stock, with
// names shortened the way the dashboard chart labels them. The input slice
// is not reordered.
func TopByStock(products []models.Product, n int) []StockBar {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Stock > sorted[j].Stock })
	if n > len(sorted) {
		n = len(sorted)
	}
	bars := make([]StockBar, 0, n)
	for _, p := range sorted[:n] {
		name := p.Name
		if len(name) > 10 {
			name = name[:10] + "..."
		}
		bars = append(bars, StockBar{Name: name, Stock: p.Stock, MinStock: p.MinStock})
	}
	return bars
}

// SupplierCount pairs a supplier with how many products reference it.
type SupplierCount struct {
	Name     string
	Products int
}

func PerSupplier(products []models.Product, suppliers []models.Supplier) []SupplierCount {
	counts := make([]SupplierCount, 0, len(suppliers))
	for _, s := range suppliers {
		n := 0
		for _, p := range products {
			if p.Supplier != nil && p.Supplier.ID == s.ID {
				n++
			}
		}
		name := s.Name
		if name == "" {
			name = "Unknown"
		}
		counts = append(counts, SupplierCount{Name: name, Products: n})
	}
	return counts
}
