package models

import "github.com/shopspring/decimal"

// Product is a read-only snapshot of a catalog record. The backend owns and
// mutates products; this client only renders the copies it fetched.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	MinStock int             `json:"minStock"`
	Supplier *Supplier       `json:"supplier,omitempty"`
}

// LowStock reports whether the product sits below its restock threshold.
func (p Product) LowStock() bool { return p.Stock < p.MinStock }

// SupplierEmail returns the supplier contact or "N/A" when none is linked,
// matching what the list and report screens display.
func (p Product) SupplierEmail() string {
	if p.Supplier == nil || p.Supplier.Email == "" {
		return "N/A"
	}
	return p.Supplier.Email
}
