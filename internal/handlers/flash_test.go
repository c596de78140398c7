package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlashRoundTrip(t *testing.T) {
	setRec := httptest.NewRecorder()
	setFlash(setRec, "success", "Widget added to invoice.")

	r := httptest.NewRequest(http.MethodGet, "/sell", nil)
	for _, c := range setRec.Result().Cookies() {
		r.AddCookie(c)
	}
	popRec := httptest.NewRecorder()
	kind, msg := popFlash(popRec, r)

	if kind != "success" {
		t.Errorf("kind: got %q", kind)
	}
	if msg != "Widget added to invoice." {
		t.Errorf("msg: got %q", msg)
	}

	cleared := false
	for _, c := range popRec.Result().Cookies() {
		if c.Name == "flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("popFlash should expire the cookie")
	}
}

func TestFlashMessageMayContainSeparator(t *testing.T) {
	setRec := httptest.NewRecorder()
	setFlash(setRec, "error", "only 5 available: quantity | stock")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range setRec.Result().Cookies() {
		r.AddCookie(c)
	}
	kind, msg := popFlash(httptest.NewRecorder(), r)
	if kind != "error" {
		t.Errorf("kind: got %q", kind)
	}
	if msg != "only 5 available: quantity | stock" {
		t.Errorf("msg: got %q", msg)
	}
}

func TestPopFlashWithoutCookie(t *testing.T) {
	kind, msg := popFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if kind != "" || msg != "" {
		t.Errorf("got %q %q", kind, msg)
	}
}

func TestWithFlashMergesData(t *testing.T) {
	setRec := httptest.NewRecorder()
	setFlash(setRec, "success", "done")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range setRec.Result().Cookies() {
		r.AddCookie(c)
	}

	data := withFlash(httptest.NewRecorder(), r, map[string]any{"Existing": 1})
	if data["Flash"] != "done" || data["FlashKind"] != "success" {
		t.Errorf("flash not merged: %+v", data)
	}
	if data["Existing"] != 1 {
		t.Error("existing keys must survive")
	}
}
