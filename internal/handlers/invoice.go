package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/invoice"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/view"
)

// InvoiceHandler serves direct navigation to /invoice. The normal path is the
// sell screen handing its cart over via POST /sell/invoice; arriving here
// without one renders a zero-valued invoice rather than an error.
type InvoiceHandler struct {
	Log zerolog.Logger
}

func NewInvoiceHandler(log zerolog.Logger) *InvoiceHandler { return &InvoiceHandler{Log: log} }

func (h *InvoiceHandler) Page(w http.ResponseWriter, r *http.Request) {
	renderInvoice(w, h.Log, invoice.Build(nil, time.Now()))
}

func renderInvoice(w http.ResponseWriter, log zerolog.Logger, inv invoice.Invoice) {
	data := map[string]any{
		"Invoice":  inv,
		"CGSTRate": invoice.CGSTRate,
		"SGSTRate": invoice.SGSTRate,
		"GSTRate":  invoice.CGSTRate + invoice.SGSTRate,
	}
	if err := view.Render(w, "invoice.html", data); err != nil {
		log.Error().Err(err).Msg("render invoice")
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}

func urlQueryEscape(s string) string { return url.QueryEscape(s) }
