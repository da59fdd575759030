package httpx

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/target/incident-portal/internal/requestid"
)

// PagesConfig configures the handler for page requests that pass the edge guard.
type PagesConfig struct {
	// Upstream is the page server to proxy to. Empty serves a placeholder page.
	Upstream string
	Logger   *slog.Logger
}

// NewPagesHandler returns a reverse proxy to the page server, or a placeholder handler.
func NewPagesHandler(cfg PagesConfig) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Upstream == "" {
		return placeholderPage{}, nil
	}

	target, err := url.Parse(cfg.Upstream)
	if err != nil {
		return nil, fmt.Errorf("parse pages upstream: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("pages upstream %q must be an absolute URL", cfg.Upstream)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			pr.Out.Host = pr.In.Host
			if id := requestid.FromContext(pr.In.Context()); id != "" {
				pr.Out.Header.Set(requestid.Header, id)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.ErrorContext(r.Context(), "pages upstream failed", "path", r.URL.Path, "error", err)
			WriteError(w, ErrorParams{
				Code:    http.StatusBadGateway,
				ErrCode: "upstream",
				Err:     errors.New("page server unavailable"),
			})
		},
	}, nil
}

var placeholderTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>Portal de Incidentes</title></head>
<body>
<h1>Portal de Incidentes</h1>
<p>{{.Path}}</p>
{{if .User}}<p>{{.User.Name}} ({{.User.Role}})</p>{{end}}
</body>
</html>
`))

// placeholderPage answers page requests when no page server is configured.
type placeholderPage struct{}

func (placeholderPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		WriteError(w, ErrorParams{
			Code:    http.StatusMethodNotAllowed,
			ErrCode: "method_not_allowed",
			Err:     fmt.Errorf("method %s not allowed", r.Method),
		})
		return
	}
	data := struct {
		Path string
		User any
	}{Path: r.URL.Path}
	if id, ok := GetSnapshotFromContext(r.Context()); ok {
		data.User = id
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := placeholderTmpl.Execute(w, data); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}
