package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/models"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/validation"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/view"
)

type supplierAPI interface {
	Suppliers(ctx context.Context) ([]models.Supplier, error)
	Supplier(ctx context.Context, id int64) (models.Supplier, error)
	CreateSupplier(ctx context.Context, s models.Supplier) (models.Supplier, error)
	UpdateSupplier(ctx context.Context, id int64, s models.Supplier) (models.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
	DeleteAllSuppliers(ctx context.Context) error
}

// SupplierHandler serves the supplier list and CRUD forms.
type SupplierHandler struct {
	API supplierAPI
	Log zerolog.Logger
}

func NewSupplierHandler(api supplierAPI, log zerolog.Logger) *SupplierHandler {
	return &SupplierHandler{API: api, Log: log}
}

// List: GET /suppliers
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	data := withFlash(w, r, map[string]any{})
	suppliers, err := h.API.Suppliers(r.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list suppliers")
		data["LoadError"] = "Failed to load suppliers. Is the backend running?"
	}
	data["Suppliers"] = suppliers
	h.render(w, "suppliers.html", data)
}

// NewForm: GET /suppliers/new
func (h *SupplierHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "supplier_form.html", withFlash(w, r, map[string]any{}))
}

// Create: POST /suppliers
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, v := parseSupplierForm(r)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, "supplier_form.html", map[string]any{"Errors": v, "Supplier": s})
		return
	}
	if _, err := h.API.CreateSupplier(r.Context(), s); err != nil {
		h.Log.Error().Err(err).Msg("create supplier")
		setFlash(w, "error", "Failed to add supplier")
		http.Redirect(w, r, "/suppliers/new", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", s.Name+" added.")
	http.Redirect(w, r, "/suppliers", http.StatusSeeOther)
}

// EditForm: GET /suppliers/{id}/edit
func (h *SupplierHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	s, err := h.API.Supplier(r.Context(), pathID(r))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.render(w, "supplier_form.html", withFlash(w, r, map[string]any{"Supplier": s, "Editing": true}))
}

// Update: POST /suppliers/{id}
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s, v := parseSupplierForm(r)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, "supplier_form.html", map[string]any{"Errors": v, "Supplier": s, "Editing": true})
		return
	}
	if _, err := h.API.UpdateSupplier(r.Context(), id, s); err != nil {
		h.Log.Error().Err(err).Msg("update supplier")
		setFlash(w, "error", "Failed to update supplier")
		http.Redirect(w, r, "/suppliers", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", s.Name+" updated.")
	http.Redirect(w, r, "/suppliers", http.StatusSeeOther)
}

// Delete: POST /suppliers/{id}/delete
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.API.DeleteSupplier(r.Context(), pathID(r)); err != nil {
		h.Log.Error().Err(err).Msg("delete supplier")
		setFlash(w, "error", "Failed to delete supplier")
	} else {
		setFlash(w, "success", "Supplier deleted.")
	}
	http.Redirect(w, r, "/suppliers", http.StatusSeeOther)
}

// DeleteAll: POST /suppliers/delete-all
func (h *SupplierHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.API.DeleteAllSuppliers(r.Context()); err != nil {
		h.Log.Error().Err(err).Msg("delete all suppliers")
		setFlash(w, "error", "Failed to delete suppliers")
	} else {
		setFlash(w, "success", "All suppliers deleted.")
	}
	http.Redirect(w, r, "/suppliers", http.StatusSeeOther)
}

func parseSupplierForm(r *http.Request) (models.Supplier, validation.Violations) {
	v := validation.Violations{}
	s := models.Supplier{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Mobile:  strings.TrimSpace(r.FormValue("mobile")),
		Company: strings.TrimSpace(r.FormValue("company")),
	}
	validation.Required("name", s.Name, v)
	validation.Required("email", s.Email, v)
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		v["email"] = "invalid"
	}
	return s, v
}

func (h *SupplierHandler) render(w http.ResponseWriter, name string, data map[string]any) {
	if err := view.Render(w, name, data); err != nil {
		h.Log.Error().Err(err).Str("template", name).Msg("render")
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}
