package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/catalog"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/httpx"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/models"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/reports"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/view"
)

type dashboardAPI interface {
	View(ctx context.Context, q catalog.Query) ([]models.Product, error)
	Suppliers(ctx context.Context) ([]models.Supplier, error)
}

// DashboardHandler renders the overview page. The stat cards auto-refresh by
// polling the JSON stats endpoint from static/app.js every 30 seconds.
type DashboardHandler struct {
	API dashboardAPI
	Log zerolog.Logger
}

func NewDashboardHandler(api dashboardAPI, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{API: api, Log: log}
}

// Page: GET /
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := withFlash(w, r, map[string]any{})
	products, suppliers, err := h.fetch(r.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("dashboard fetch")
		data["LoadError"] = "Failed to load dashboard data. Is the backend running?"
	}
	stats := reports.Compute(products, suppliers)
	data["Stats"] = stats
	data["TopProducts"] = reports.TopByStock(products, 5)
	data["MaxStock"] = maxStock(products)
	if err := view.Render(w, "dashboard.html", data); err != nil {
		h.Log.Error().Err(err).Msg("render dashboard")
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}

// Stats: GET /api/dashboard/stats, polled by the dashboard page.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	products, suppliers, err := h.fetch(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusBadGateway, "backend_unavailable", nil)
		return
	}
	st := reports.Compute(products, suppliers)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"totalProducts":  st.TotalProducts,
		"lowStockCount":  st.LowStockCount,
		"healthyCount":   st.HealthyCount,
		"totalSuppliers": st.TotalSuppliers,
	})
}

// fetch loads both snapshots. A missing suppliers endpoint degrades to an
// empty list, same as the original screen did.
func (h *DashboardHandler) fetch(ctx context.Context) ([]models.Product, []models.Supplier, error) {
	products, err := h.API.View(ctx, catalog.Query{})
	if err != nil {
		return nil, nil, err
	}
	suppliers, err := h.API.Suppliers(ctx)
	if err != nil {
		h.Log.Warn().Err(err).Msg("suppliers endpoint unavailable")
		suppliers = nil
	}
	return products, suppliers, nil
}

func maxStock(products []models.Product) int {
	m := 1
	for _, p := range products {
		if p.Stock > m {
			m = p.Stock
		}
		if p.MinStock > m {
			m = p.MinStock
		}
	}
	return m
}
