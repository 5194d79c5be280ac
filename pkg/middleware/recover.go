package middleware

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/farmxchain/farmx/pkg/logger"
	"github.com/farmxchain/farmx/pkg/reqid"
	"github.com/farmxchain/farmx/pkg/response"
)

var panicPage = template.Must(template.New("panic").Parse(`<!doctype html>
<html><head><title>FarmXChain</title></head>
<body><h1>Something went wrong</h1>
<p>Please try again. If it keeps happening, quote reference <code>{{.}}</code>.</p>
</body></html>`))

// Recovery turns a panicking handler into a 500. Browsers get a short HTML
// page quoting the request ID; API callers get the JSON envelope.
// It must sit inside reqid.Middleware so the ID is known.
//
//	r.Use(metrics.Middleware())
//	r.Use(reqid.Middleware())
//	r.Use(middleware.Recovery)
//	r.Use(middleware.Logger)
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// net/http uses this sentinel to drop the connection on purpose.
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			id := reqid.FromCtx(r.Context())
			log := logger.WithCtx(r.Context())
			if id != "" {
				log = log.With(slog.String("request_id", id))
			}
			log.Error("panic recovered",
				"error", fmt.Sprintf("%v", rec),
				"stack", string(debug.Stack()),
				"method", r.Method,
				"path", r.URL.Path,
			)

			if wantsHTML(r) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				_ = panicPage.Execute(w, id)
				return
			}
			response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		}()
		next.ServeHTTP(w, r)
	})
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
