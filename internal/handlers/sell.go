package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/catalog"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/invoice"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/models"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/sell"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/view"
)

type catalogViewer interface {
	View(ctx context.Context, q catalog.Query) ([]models.Product, error)
}

// SellHandler drives the sell screen: catalog snapshot, product selection,
// cart accumulation, and the handoff to the invoice renderer.
type SellHandler struct {
	Catalog  catalogViewer
	Sessions *sell.Store
	Log      zerolog.Logger
}

func NewSellHandler(c catalogViewer, sessions *sell.Store, log zerolog.Logger) *SellHandler {
	return &SellHandler{Catalog: c, Sessions: sessions, Log: log}
}

// Page renders the sell screen. A plain GET is a screen entry and fetches a
// fresh catalog snapshot; requests carrying search or keep parameters reuse
// the session's snapshot (filtering is local and never refetches).
func (h *SellHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Get(w, r)
	search := r.URL.Query().Get("search")
	entry := search == "" && r.URL.Query().Get("keep") == ""
	if entry {
		products, err := h.Catalog.View(r.Context(), catalog.Query{})
		if err != nil {
			h.Log.Error().Err(err).Msg("catalog fetch failed")
			sess.SetLoadError("Failed to load products")
		} else {
			sess.ReplaceSnapshot(products)
		}
	}

	selected, hasSelection := sess.Selected()
	data := withFlash(w, r, map[string]any{
		"Products":     sess.Filter(search),
		"Search":       search,
		"Cart":         sess.Cart(),
		"HasSelection": hasSelection,
		"LoadError":    sess.LoadError(),
	})
	if hasSelection {
		data["Selected"] = selected
	}
	if err := view.Render(w, "sell.html", data); err != nil {
		h.Log.Error().Err(err).Msg("render sell page")
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}

// Select sets the active product for quantity entry. Any previously entered
// quantity is cleared by the session.
func (h *SellHandler) Select(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Get(w, r)
	id, _ := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	sess.Select(id)
	redirectKeep(w, r)
}

// Add validates the pending product+quantity pair and appends a cart line.
func (h *SellHandler) Add(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Get(w, r)
	sess.EnterQuantity(r.FormValue("quantity"))
	line, err := sess.AddToCart()
	if err != nil {
		setFlash(w, "error", err.Error())
		redirectKeep(w, r)
		return
	}
	setFlash(w, "success", line.Name+" added to invoice.")
	redirectKeep(w, r)
}

// GenerateInvoice hands the cart to the renderer. The session's cart is
// abandoned; the rendered invoice works entirely on its own copy.
func (h *SellHandler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Get(w, r)
	lines, err := sess.GenerateInvoice()
	if err != nil {
		setFlash(w, "error", err.Error())
		redirectKeep(w, r)
		return
	}
	inv := invoice.Build(lines, time.Now())
	renderInvoice(w, h.Log, inv)
}

// redirectKeep sends the browser back to the sell page without triggering a
// fresh catalog fetch, preserving any search text.
func redirectKeep(w http.ResponseWriter, r *http.Request) {
	target := "/sell?keep=1"
	if s := r.FormValue("search"); s != "" {
		target = "/sell?search=" + urlQueryEscape(s)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
