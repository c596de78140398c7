package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/catalog"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/handlers"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/httpx"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/lowstock"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/sell"
)

type Deps struct {
	Catalog  *catalog.Client
	Sessions *sell.Store
	Watcher  *lowstock.Watcher
	Log      zerolog.Logger
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.StripSlashes)
	r.Use(withLogging(d.Log))
	r.Use(withRecover(d.Log))

	dashboard := handlers.NewDashboardHandler(d.Catalog, d.Log)
	productsH := handlers.NewProductHandler(d.Catalog, d.Log)
	suppliersH := handlers.NewSupplierHandler(d.Catalog, d.Log)
	sellH := handlers.NewSellHandler(d.Catalog, d.Sessions, d.Log)
	invoiceH := handlers.NewInvoiceHandler(d.Log)
	lowStockH := handlers.NewLowStockHandler(d.Watcher, d.Log)
	reportsH := handlers.NewReportsHandler(d.Catalog, d.Log)

	r.Get("/", dashboard.Page)
	r.Get("/api/dashboard/stats", dashboard.Stats)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productsH.List)
		r.Get("/new", productsH.NewForm)
		r.Post("/", productsH.Create)
		r.Post("/delete-all", productsH.DeleteAll)
		r.Get("/{id}/edit", productsH.EditForm)
		r.Post("/{id}", productsH.Update)
		r.Post("/{id}/delete", productsH.Delete)
		r.Post("/{id}/sell", productsH.Sell)
	})

	r.Route("/suppliers", func(r chi.Router) {
		r.Get("/", suppliersH.List)
		r.Get("/new", suppliersH.NewForm)
		r.Post("/", suppliersH.Create)
		r.Post("/delete-all", suppliersH.DeleteAll)
		r.Get("/{id}/edit", suppliersH.EditForm)
		r.Post("/{id}", suppliersH.Update)
		r.Post("/{id}/delete", suppliersH.Delete)
	})

	r.Route("/sell", func(r chi.Router) {
		r.Get("/", sellH.Page)
		r.Post("/select", sellH.Select)
		r.Post("/add", sellH.Add)
		r.Post("/invoice", sellH.GenerateInvoice)
	})
	r.Get("/invoice", invoiceH.Page)

	r.Get("/low-stock", lowStockH.Page)
	r.Post("/low-stock/refresh", lowStockH.Refresh)
	r.Get("/api/low-stock", lowStockH.JSON)

	r.Get("/reports", reportsH.Page)
	r.Get("/reports/export.csv", reportsH.ExportCSV)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	fs := http.StripPrefix("/static/", http.FileServer(http.Dir("static")))
	r.Get("/static/*", fs.ServeHTTP)

	return r
}

func withLogging(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}

func withRecover(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panicked")
					httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
