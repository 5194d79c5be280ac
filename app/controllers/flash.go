package controllers

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookie = "farmx_flash"

// flash stores a one-shot banner for the page after a redirect.
func flash(w http.ResponseWriter, kind, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + ":" + msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash returns and clears the pending (success, error) banners.
func takeFlash(w http.ResponseWriter, r *http.Request) (success, failure string) {
	ck, err := r.Cookie(flashCookie)
	if err != nil {
		return "", ""
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})

	raw, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return "", ""
	}
	kind, msg, _ := strings.Cut(raw, ":")
	if kind == "error" {
		return "", msg
	}
	return msg, ""
}

// redirectOK sends the browser to path with a success banner.
func redirectOK(w http.ResponseWriter, r *http.Request, path, msg string) {
	flash(w, "success", msg)
	http.Redirect(w, r, path, http.StatusFound)
}

// redirectErr sends the browser to path with an error banner.
func redirectErr(w http.ResponseWriter, r *http.Request, path, msg string) {
	flash(w, "error", msg)
	http.Redirect(w, r, path, http.StatusFound)
}
