package controllers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/farmxchain/farmx/app/models"
	"github.com/farmxchain/farmx/app/views"
	"github.com/farmxchain/farmx/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageSet is one parsed template per page, each paired with the layout.
type pageSet struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"badge": func(status any) string { return views.StatusBadge(fmt.Sprint(status)) },
	"date":  func(t models.Timestamp) string { return t.Date() },
	"when":  func(t models.Timestamp) string { return t.DateTime() },
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"fee": func(d decimal.NullDecimal) string {
		if !d.Valid {
			return "-"
		}
		return d.Decimal.StringFixed(2)
	},
	"has": func(list any, want string) bool {
		v := reflect.ValueOf(list)
		if v.Kind() != reflect.Slice {
			return false
		}
		for i := 0; i < v.Len(); i++ {
			if fmt.Sprint(v.Index(i).Interface()) == want {
				return true
			}
		}
		return false
	},
	"field": func(p *views.Page, key string) string {
		if p == nil {
			return ""
		}
		return p.Old[key]
	},
	"invalid": func(p *views.Page, key string) string {
		if p == nil {
			return ""
		}
		return p.Errors[key]
	},
}

func mustParsePages() *pageSet {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}

	set := &pageSet{pages: make(map[string]*template.Template)}
	for _, name := range names {
		base := strings.TrimSuffix(path.Base(name), ".html")
		if base == "layout" {
			continue
		}
		set.pages[base] = template.Must(
			template.New(base).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", name),
		)
	}
	return set
}

// render executes the named page into a buffer first so a template error
// becomes a clean 500 instead of half a page.
func (c *Controller) render(w http.ResponseWriter, r *http.Request, status int, name string, p *views.Page) {
	tmpl, ok := c.pages.pages[name]
	if !ok {
		logger.WithCtx(r.Context()).Error("unknown page", "page", name)
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		logger.WithCtx(r.Context()).Error("render failed", "page", name, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// statusFor maps a failed backend call to the status of the re-rendered page.
func statusFor(err error) int {
	var code int
	if apiErr := asAPIError(err); apiErr != nil {
		code = apiErr.StatusCode
	}
	if code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}
