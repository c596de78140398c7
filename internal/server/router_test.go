package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/catalog"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/lowstock"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/models"
	"github.com/Dharma23012432/Smart-Inventory-and-Billing-System/internal/sell"
)

// fakeBackend stands in for the inventory REST API.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	products := []models.Product{
		{ID: 1, Name: "Widget", Price: decimal.RequireFromString("10.00"), Stock: 5, MinStock: 2},
		{ID: 2, Name: "Gadget", Price: decimal.RequireFromString("25.00"), Stock: 1, MinStock: 3},
	}
	suppliers := []models.Supplier{{ID: 1, Name: "Acme", Email: "orders@acme.test"}}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/products/view", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(products)
	})
	mux.HandleFunc("/api/products/low-stock", func(w http.ResponseWriter, r *http.Request) {
		var low []models.Product
		for _, p := range products {
			if p.LowStock() {
				low = append(low, p)
			}
		}
		_ = json.NewEncoder(w).Encode(low)
	})
	mux.HandleFunc("/supplier/view", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(suppliers)
	})
	mux.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && strings.Contains(r.URL.Path, "/sell/"):
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodGet && r.URL.Path == "/api/products/1":
			_ = json.NewEncoder(w).Encode(products[0])
		default:
			http.NotFound(w, r)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) (http.Handler, *lowstock.Watcher) {
	t.Helper()
	backend := fakeBackend(t)
	client := catalog.New(backend.URL, 2*time.Second, zerolog.Nop())
	store, err := sell.NewStore(8)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	watcher := lowstock.New(client, time.Minute, zerolog.Nop())
	h := New(Deps{Catalog: client, Sessions: store, Watcher: watcher, Log: zerolog.Nop()})
	return h, watcher
}

func get(t *testing.T, h http.Handler, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func postForm(t *testing.T, h http.Handler, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	h, _ := newTestServer(t)
	res := get(t, h, "/health", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("status: %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"status":"ok"`) {
		t.Errorf("body: %s", res.Body.String())
	}
}

func TestDashboardRoutes(t *testing.T) {
	h, _ := newTestServer(t)

	res := get(t, h, "/", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("page status: %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Inventory Dashboard") {
		t.Error("dashboard page missing title")
	}

	res = get(t, h, "/api/dashboard/stats", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("stats status: %d", res.Code)
	}
	var stats map[string]int
	if err := json.Unmarshal(res.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats["totalProducts"] != 2 || stats["totalSuppliers"] != 1 {
		t.Errorf("stats: %+v", stats)
	}
}

func TestProductRoutes(t *testing.T) {
	h, _ := newTestServer(t)

	res := get(t, h, "/products", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("status: %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Widget") {
		t.Error("product list missing")
	}

	res = postForm(t, h, "/products/1/sell", url.Values{"quantity": {"2"}}, nil)
	if res.Code != http.StatusSeeOther {
		t.Fatalf("sell status: %d", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "/products" {
		t.Errorf("redirect: %s", loc)
	}
}

func TestSellWorkflowEndToEnd(t *testing.T) {
	h, _ := newTestServer(t)

	var cookies []*http.Cookie
	merge := func(res *httptest.ResponseRecorder) {
		for _, c := range res.Result().Cookies() {
			if c.MaxAge < 0 {
				continue
			}
			cookies = append(cookies, c)
		}
	}

	res := get(t, h, "/sell", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("entry status: %d", res.Code)
	}
	merge(res)

	merge(postForm(t, h, "/sell/select", url.Values{"product_id": {"1"}}, cookies))
	merge(postForm(t, h, "/sell/add", url.Values{"quantity": {"3"}}, cookies))

	res = postForm(t, h, "/sell/invoice", nil, cookies)
	if res.Code != http.StatusOK {
		t.Fatalf("invoice status: %d", res.Code)
	}
	body := res.Body.String()
	for _, want := range []string{"Tax Invoice", "30.00", "2.70", "35.40"} {
		if !strings.Contains(body, want) {
			t.Errorf("invoice missing %q", want)
		}
	}
}

func TestInvoiceDirectNavigation(t *testing.T) {
	h, _ := newTestServer(t)

	res := get(t, h, "/invoice", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("status: %d", res.Code)
	}
	body := res.Body.String()
	if !strings.Contains(body, "Tax Invoice") || !strings.Contains(body, "0.00") {
		t.Error("zero invoice should render")
	}
}

func TestLowStockRoutes(t *testing.T) {
	h, w := newTestServer(t)
	w.Refresh(context.Background())

	res := get(t, h, "/low-stock", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("page status: %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Gadget") {
		t.Error("low stock product missing")
	}

	res = get(t, h, "/api/low-stock", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("json status: %d", res.Code)
	}
	var payload struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Count != 1 {
		t.Errorf("count: %d", payload.Count)
	}
}

func TestReportsRoutes(t *testing.T) {
	h, _ := newTestServer(t)

	res := get(t, h, "/reports", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("page status: %d", res.Code)
	}

	res = get(t, h, "/reports/export.csv", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("csv status: %d", res.Code)
	}
	if ct := res.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type: %s", ct)
	}
	if !strings.Contains(res.Body.String(), "1,Widget,5,2,Healthy,") {
		t.Errorf("csv body: %s", res.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestServer(t)
	if res := get(t, h, "/nope", nil); res.Code != http.StatusNotFound {
		t.Errorf("status: %d", res.Code)
	}
}
