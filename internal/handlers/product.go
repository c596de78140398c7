package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/catalog"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/models"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/validation"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/view"
)

type productAPI interface {
	View(ctx context.Context, q catalog.Query) ([]models.Product, error)
	Get(ctx context.Context, id int64) (models.Product, error)
	Add(ctx context.Context, p models.Product) (models.Product, error)
	Update(ctx context.Context, id int64, p models.Product) (models.Product, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	Sell(ctx context.Context, id int64, soldQuantity int) error
	Suppliers(ctx context.Context) ([]models.Supplier, error)
}

// ProductHandler serves the product list and its CRUD forms. Search, stock
// filter, and sort are passed through to the backend as query hints; the
// list-screen sell action is the path that actually decrements server stock.
type ProductHandler struct {
	API productAPI
	Log zerolog.Logger
}

func NewProductHandler(api productAPI, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{API: api, Log: log}
}

// List: GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := catalog.Query{
		Search:        strings.TrimSpace(r.URL.Query().Get("search")),
		StockLevel:    r.URL.Query().Get("stock"),
		SortField:     "stock",
		SortDirection: r.URL.Query().Get("sort"),
	}
	if q.SortDirection == "" {
		q.SortDirection = "desc"
	}
	data := withFlash(w, r, map[string]any{
		"Search": q.Search,
		"Stock":  q.StockLevel,
		"Sort":   q.SortDirection,
	})
	products, err := h.API.View(r.Context(), q)
	if err != nil {
		h.Log.Error().Err(err).Msg("list products")
		data["LoadError"] = "Failed to load products. Is the backend running?"
	}
	data["Products"] = products
	h.render(w, "products.html", data)
}

// NewForm: GET /products/new
func (h *ProductHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	data := withFlash(w, r, map[string]any{"Suppliers": h.suppliers(r.Context())})
	h.render(w, "product_form.html", data)
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, v := h.parseForm(r)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, "product_form.html", map[string]any{
			"Errors": v, "Product": p, "Suppliers": h.suppliers(r.Context()),
		})
		return
	}
	if _, err := h.API.Add(r.Context(), p); err != nil {
		h.Log.Error().Err(err).Msg("create product")
		setFlash(w, "error", "Failed to add product")
		http.Redirect(w, r, "/products/new", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", p.Name+" added.")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// EditForm: GET /products/{id}/edit
func (h *ProductHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	p, err := h.API.Get(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	data := withFlash(w, r, map[string]any{
		"Product": p, "Editing": true, "Suppliers": h.suppliers(r.Context()),
	})
	h.render(w, "product_form.html", data)
}

// Update: POST /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	p, v := h.parseForm(r)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, "product_form.html", map[string]any{
			"Errors": v, "Product": p, "Editing": true, "Suppliers": h.suppliers(r.Context()),
		})
		return
	}
	if _, err := h.API.Update(r.Context(), id, p); err != nil {
		h.Log.Error().Err(err).Msg("update product")
		setFlash(w, "error", "Failed to update product")
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", p.Name+" updated.")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// Delete: POST /products/{id}/delete
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.API.Delete(r.Context(), pathID(r)); err != nil {
		h.Log.Error().Err(err).Msg("delete product")
		setFlash(w, "error", "Failed to delete product")
	} else {
		setFlash(w, "success", "Product deleted.")
	}
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// DeleteAll: POST /products/delete-all
func (h *ProductHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.API.DeleteAll(r.Context()); err != nil {
		h.Log.Error().Err(err).Msg("delete all products")
		setFlash(w, "error", "Failed to delete products")
	} else {
		setFlash(w, "success", "All products deleted.")
	}
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// Sell: POST /products/{id}/sell, the list-screen quantity-prompt sale. It
// validates against the stock the screen showed, then asks the backend to
// decrement. Independent of the sell-page cart; the cart never calls this.
func (h *ProductHandler) Sell(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	p, err := h.API.Get(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	v := validation.Violations{}
	qty := validation.PositiveInt("quantity", r.FormValue("quantity"), v)
	if !v.Empty() {
		setFlash(w, "error", "Please enter a valid number greater than 0.")
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	if qty > p.Stock {
		setFlash(w, "error", "You only have "+strconv.Itoa(p.Stock)+" in stock.")
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	if err := h.API.Sell(r.Context(), id, qty); err != nil {
		h.Log.Error().Err(err).Msg("sell product")
		setFlash(w, "error", "Failed to update stock")
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", "Product sold and stock updated.")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *ProductHandler) parseForm(r *http.Request) (models.Product, validation.Violations) {
	v := validation.Violations{}
	name := strings.TrimSpace(r.FormValue("name"))
	validation.Required("name", name, v)
	price, perr := decimal.NewFromString(strings.TrimSpace(r.FormValue("price")))
	if perr != nil || price.IsNegative() {
		v["price"] = "must_not_be_negative"
	}
	stock, serr := strconv.Atoi(r.FormValue("stock"))
	if serr != nil {
		v["stock"] = "must_be_integer"
	}
	validation.NonNegativeInt("stock", stock, v)
	minStock, merr := strconv.Atoi(r.FormValue("min_stock"))
	if merr != nil {
		v["min_stock"] = "must_be_integer"
	}
	validation.NonNegativeInt("min_stock", minStock, v)
	p := models.Product{Name: name, Price: price, Stock: stock, MinStock: minStock}
	if sid, err := strconv.ParseInt(r.FormValue("supplier_id"), 10, 64); err == nil && sid > 0 {
		p.Supplier = &models.Supplier{ID: sid}
	} else {
		v["supplier_id"] = "required"
	}
	return p, v
}

func (h *ProductHandler) suppliers(ctx context.Context) []models.Supplier {
	suppliers, err := h.API.Suppliers(ctx)
	if err != nil {
		h.Log.Warn().Err(err).Msg("suppliers unavailable")
		return nil
	}
	return suppliers
}

func (h *ProductHandler) render(w http.ResponseWriter, name string, data map[string]any) {
	if err := view.Render(w, name, data); err != nil {
		h.Log.Error().Err(err).Str("template", name).Msg("render")
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}
