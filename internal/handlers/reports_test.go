package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func newReportsEnv(t *testing.T) (*stubDashboardAPI, *browser) {
	t.Helper()
	api, _ := newDashboardEnv(t)
	h := NewReportsHandler(api, zerolog.Nop())
	r := chi.NewRouter()
	r.Get("/reports", h.Page)
	r.Get("/reports/export.csv", h.ExportCSV)
	return api, newBrowser(t, r)
}

func TestReportsPage(t *testing.T) {
	_, b := newReportsEnv(t)

	res := b.get("/reports")
	if res.Code != http.StatusOK {
		t.Fatalf("status: %d", res.Code)
	}
	body := res.Body.String()
	if !strings.Contains(body, "Reports") {
		t.Error("page title missing")
	}
	// inventory value: 8×10.00 + 1×25.00
	if !strings.Contains(body, "105.00") {
		t.Error("inventory value missing")
	}
	if !strings.Contains(body, "Widget") {
		t.Error("stock level chart missing")
	}
}

func TestReportsPageBackendDown(t *testing.T) {
	api, b := newReportsEnv(t)
	api.viewErr = errors.New("connection refused")

	res := b.get("/reports")
	if res.Code != http.StatusOK {
		t.Fatalf("status: %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Failed to load reports data") {
		t.Error("load error missing")
	}
}

func TestReportsExportCSV(t *testing.T) {
	_, b := newReportsEnv(t)

	res := b.get("/reports/export.csv")
	if res.Code != http.StatusOK {
		t.Fatalf("status: %d", res.Code)
	}
	if ct := res.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type: %s", ct)
	}
	wantName := "inventory-report-" + time.Now().Format("2006-01-02") + ".csv"
	if cd := res.Header().Get("Content-Disposition"); !strings.Contains(cd, wantName) {
		t.Errorf("content disposition: %s", cd)
	}
	body := res.Body.String()
	if !strings.HasPrefix(body, "ID,Name,Stock,Min Stock,Status,Supplier") {
		t.Errorf("header row: %s", body)
	}
	if !strings.Contains(body, "2,Gadget,1,3,Low,") {
		t.Errorf("gadget row missing: %s", body)
	}
}

func TestReportsExportBackendDown(t *testing.T) {
	api, b := newReportsEnv(t)
	api.viewErr = errors.New("connection refused")

	if res := b.get("/reports/export.csv"); res.Code != http.StatusBadGateway {
		t.Errorf("status: %d", res.Code)
	}
}
