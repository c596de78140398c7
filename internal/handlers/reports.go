package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/models"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/reports"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/view"
)

// ReportsHandler renders the analytics page and the CSV export.
type ReportsHandler struct {
	API dashboardAPI
	Log zerolog.Logger
}

func NewReportsHandler(api dashboardAPI, log zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{API: api, Log: log}
}

// Page: GET /reports
func (h *ReportsHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := withFlash(w, r, map[string]any{})
	products, suppliers, err := fetchSnapshots(h.API, r, h.Log)
	if err != nil {
		h.Log.Error().Err(err).Msg("reports fetch")
		data["LoadError"] = "Failed to load reports data. Is the backend running?"
	}
	stockLevels := products
	if len(stockLevels) > 10 {
		stockLevels = stockLevels[:10]
	}
	data["Stats"] = reports.Compute(products, suppliers)
	data["StockLevels"] = stockLevels
	data["PerSupplier"] = reports.PerSupplier(products, suppliers)
	data["MaxStock"] = maxStock(products)
	if err := view.Render(w, "reports.html", data); err != nil {
		h.Log.Error().Err(err).Msg("render reports")
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}

// ExportCSV: GET /reports/export.csv
func (h *ReportsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	products, _, err := fetchSnapshots(h.API, r, h.Log)
	if err != nil {
		h.Log.Error().Err(err).Msg("export fetch")
		http.Error(w, "backend unavailable", http.StatusBadGateway)
		return
	}
	body, err := reports.CSV(products)
	if err != nil {
		h.Log.Error().Err(err).Msg("marshal csv")
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	filename := "inventory-report-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, werr := w.Write(body); werr != nil {
		_ = werr
	}
}

func fetchSnapshots(api dashboardAPI, r *http.Request, log zerolog.Logger) ([]models.Product, []models.Supplier, error) {
	h := DashboardHandler{API: api, Log: log}
	return h.fetch(r.Context())
}
