package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Flash messages ride on a short-lived cookie: set on the redirecting
// request, read and cleared on the next render. Success flashes are hidden
// by static/app.js two seconds after the page shows them.

func setFlash(w http.ResponseWriter, kind, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:  "flash",
		Value: url.QueryEscape(kind + "|" + msg),
		Path:  "/",
	})
}

func popFlash(w http.ResponseWriter, r *http.Request) (kind, msg string) {
	c, err := r.Cookie("flash")
	if err != nil || c.Value == "" {
		return "", ""
	}
	http.SetCookie(w, &http.Cookie{Name: "flash", Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	dec, derr := url.QueryUnescape(c.Value)
	if derr != nil {
		dec = c.Value
	}
	kind, msg, found := strings.Cut(dec, "|")
	if !found {
		return "info", dec
	}
	return kind, msg
}

// withFlash merges any pending flash into the template data map.
func withFlash(w http.ResponseWriter, r *http.Request, data map[string]any) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	if kind, msg := popFlash(w, r); msg != "" {
		data["FlashKind"] = kind
		data["Flash"] = msg
	}
	return data
}
