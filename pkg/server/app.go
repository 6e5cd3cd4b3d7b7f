package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"cheddar-hq/adapter/pkg/config"
	"cheddar-hq/adapter/pkg/transport/middleware"
)

// NewApplicationHandler returns the handler for application routes: a
// reverse proxy to cfg.UpstreamURL when set, otherwise the built-in ping
// application.
func NewApplicationHandler(cfg *config.ServerConfig, logger *slog.Logger) (http.Handler, error) {
	if cfg.UpstreamURL == "" {
		return PingHandler(), nil
	}

	target, err := url.Parse(cfg.UpstreamURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL %q: %w", cfg.UpstreamURL, err)
	}

	return NewUpstreamProxy(target, logger), nil
}

// NewUpstreamProxy forwards requests to target. Upstream failures become a
// JSON 502.
func NewUpstreamProxy(target *url.URL, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.SetXForwarded()
			r.Out.Host = r.In.Host
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.ErrorContext(r.Context(), "upstream request failed",
				"upstream", target.Host,
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
			middleware.WriteError(w, middleware.NewBadGatewayError("The upstream application is unavailable."))
		},
	}

	return proxy
}

// PingHandler serves GET /ping with {"status":"pong"}.
func PingHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "pong"})
		}
	})
	return mux
}
