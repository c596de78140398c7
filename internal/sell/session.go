// Package sell implements the cart-building workflow of the sell screen:
// pick a product from the catalog snapshot, enter a quantity bounded by the
// stock that snapshot reported, and accumulate confirmed lines until an
// invoice is generated.
//
// Adding a line never touches the backend. Committing a sale against
// server-held stock is a separate operation on the product list screen
// (catalog.Client.Sell); the two paths are intentionally independent.
package sell

import (
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/models"
)

// Validation failures of the workflow. These are recoverable, user-facing
// conditions: the operation does not proceed and no state is mutated.
var (
	ErrNoSelection       = errors.New("select a product and enter a quantity")
	ErrInsufficientStock = errors.New("quantity exceeds available stock")
	ErrEmptyCart         = errors.New("no products added to invoice")
)

// Session is the state of one operator's visit to the sell screen: the
// catalog snapshot, the pending selection, and the cart accumulated so far.
// It is exclusively owned by the sell screen; the invoice renderer only ever
// receives copies.
type Session struct {
	mu       sync.Mutex
	snapshot []models.Product
	loadErr  string
	selected *models.Product
	quantity string
	cart     []models.CartLine
}

func NewSession() *Session { return &Session{} }

// ReplaceSnapshot installs a freshly fetched catalog snapshot and clears any
// previous load error. Earlier snapshots are simply replaced; cart lines
// added against them are kept (add-time validation is final).
func (s *Session) ReplaceSnapshot(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = make([]models.Product, len(products))
	copy(s.snapshot, products)
	s.loadErr = ""
}

// SetLoadError records a failed catalog fetch. The previous snapshot and the
// cart stay untouched so the operator can retry.
func (s *Session) SetLoadError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = msg
}

func (s *Session) LoadError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Snapshot returns a copy of the loaded catalog.
func (s *Session) Snapshot() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// Filter returns the products whose name contains search, case-insensitively.
// The underlying snapshot is never mutated.
func (s *Session) Filter(search string) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		out := make([]models.Product, len(s.snapshot))
		copy(out, s.snapshot)
		return out
	}
	out := make([]models.Product, 0, len(s.snapshot))
	for _, p := range s.snapshot {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Select marks the product as the active one for quantity entry and clears
// any previously entered quantity. Selecting an id that is not in the
// snapshot clears the selection.
func (s *Session) Select(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantity = ""
	for _, p := range s.snapshot {
		if p.ID == productID {
			cp := p
			s.selected = &cp
			return true
		}
	}
	s.selected = nil
	return false
}

// Selected returns a copy of the active product, if any.
func (s *Session) Selected() (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return models.Product{}, false
	}
	return *s.selected, true
}

// EnterQuantity records the operator's raw quantity input. Validation happens
// in AddToCart so the distinct failure messages can be produced there.
func (s *Session) EnterQuantity(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantity = strings.TrimSpace(raw)
}

func (s *Session) Quantity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantity
}

// AddToCart validates the pending selection and quantity and, on success,
// appends a line and resets both inputs. On any violation the cart is left
// unchanged.
//
// The quantity bound is the stock of the snapshot the product was selected
// from; it is not re-validated later.
func (s *Session) AddToCart() (models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil || s.quantity == "" {
		return models.CartLine{}, ErrNoSelection
	}
	qty, err := strconv.Atoi(s.quantity)
	if err != nil || qty <= 0 {
		return models.CartLine{}, ErrNoSelection
	}
	if qty > s.selected.Stock {
		return models.CartLine{}, errors.Wrapf(ErrInsufficientStock, "only %d available", s.selected.Stock)
	}
	line := models.CartLine{
		ProductID: s.selected.ID,
		Name:      s.selected.Name,
		Quantity:  qty,
		UnitPrice: s.selected.Price,
	}
	s.cart = append(s.cart, line)
	s.selected = nil
	s.quantity = ""
	return line, nil
}

// Cart returns a copy of the accumulated lines, in the order added.
func (s *Session) Cart() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.cart))
	copy(out, s.cart)
	return out
}

// GenerateInvoice hands the cart over for rendering. The returned slice is
// the renderer's own copy; the session's cart is abandoned. An empty cart is
// rejected with no transition.
func (s *Session) GenerateInvoice() ([]models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cart) == 0 {
		return nil, ErrEmptyCart
	}
	out := make([]models.CartLine, len(s.cart))
	copy(out, s.cart)
	s.cart = nil
	s.selected = nil
	s.quantity = ""
	return out, nil
}
