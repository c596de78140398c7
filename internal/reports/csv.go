package reports

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/models"
)

// CSV marshals the product snapshot into the inventory-report export:
// ID, Name, Stock, Min Stock, Status, Supplier.
func CSV(products []models.Product) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ID", "Name", "Stock", "Min Stock", "Status", "Supplier"}); err != nil {
		return nil, errors.Wrap(err, "write csv header")
	}
	for _, p := range products {
		status := "Healthy"
		if p.LowStock() {
			status = "Low"
		}
		row := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.MinStock),
			status,
			p.SupplierEmail(),
		}
		if err := w.Write(row); err != nil {
			return nil, errors.Wrap(err, "write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "flush csv")
	}
	return buf.Bytes(), nil
}
