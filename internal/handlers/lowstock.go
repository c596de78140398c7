package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/httpx"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/lowstock"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/view"
)

// LowStockHandler serves the alerts page off the watcher's cached snapshot.
// "Refresh Now" forces an immediate fetch instead of waiting for the next
// tick.
type LowStockHandler struct {
	Watcher *lowstock.Watcher
	Log     zerolog.Logger
}

func NewLowStockHandler(w *lowstock.Watcher, log zerolog.Logger) *LowStockHandler {
	return &LowStockHandler{Watcher: w, Log: log}
}

// Page: GET /low-stock
func (h *LowStockHandler) Page(w http.ResponseWriter, r *http.Request) {
	products, fetchedAt, err := h.Watcher.Current()
	data := withFlash(w, r, map[string]any{
		"Products":  products,
		"FetchedAt": fetchedAt,
	})
	if err != nil {
		data["LoadError"] = "Failed to load low stock products. Is your backend running?"
	}
	if err := view.Render(w, "low_stock.html", data); err != nil {
		h.Log.Error().Err(err).Msg("render low stock")
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}

// Refresh: POST /low-stock/refresh
func (h *LowStockHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.Watcher.Refresh(r.Context())
	http.Redirect(w, r, "/low-stock", http.StatusSeeOther)
}

// JSON: GET /api/low-stock, polled by the alerts page for auto-refresh.
func (h *LowStockHandler) JSON(w http.ResponseWriter, r *http.Request) {
	products, fetchedAt, err := h.Watcher.Current()
	if err != nil {
		httpx.JSONError(w, http.StatusBadGateway, "backend_unavailable", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":     products,
		"count":     len(products),
		"fetchedAt": fetchedAt,
	})
}
