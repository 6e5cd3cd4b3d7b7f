package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"cheddar-hq/adapter/pkg/transport/middleware"
)

// TokenSource defines where to extract a token from
type TokenSource struct {
	Name   string // Header name
	Scheme string // "Bearer", etc. (optional)
}

// DefaultSources reads "Authorization: Bearer <token>" and then X-Admin-Token.
var DefaultSources = []TokenSource{
	{Name: "Authorization", Scheme: "Bearer"},
	{Name: "X-Admin-Token"},
}

// TokenMiddleware is HTTP middleware for bearer token authentication
type TokenMiddleware struct {
	store   TokenStore
	sources []TokenSource
	logger  *slog.Logger
}

// NewTokenMiddleware creates a new token authentication middleware.
// Nil sources use DefaultSources; a nil logger uses slog.Default().
func NewTokenMiddleware(store TokenStore, sources []TokenSource, logger *slog.Logger) *TokenMiddleware {
	if sources == nil {
		sources = DefaultSources
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TokenMiddleware{
		store:   store,
		sources: sources,
		logger:  logger.With("component", "auth"),
	}
}

// Handle wraps an HTTP handler with token authentication
func (m *TokenMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := m.extractToken(r)
		if err != nil {
			m.logger.WarnContext(r.Context(), "missing admin token",
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
			)
			unauthorized(w, middleware.NewAuthenticationError("Missing credentials.", middleware.CodeMissingToken))
			return
		}

		info, err := m.store.Validate(token)
		if err != nil {
			m.logger.WarnContext(r.Context(), "rejected admin token",
				"error", err,
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
			)
			unauthorized(w, middleware.NewAuthenticationError("Invalid credentials.", middleware.CodeInvalidToken))
			return
		}

		m.logger.DebugContext(r.Context(), "admin token authenticated",
			"token", info.Name,
			"path", r.URL.Path,
		)

		ctx := context.WithValue(r.Context(), tokenInfoKey, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, resp *middleware.ErrorResponse) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="cheddar"`)
	middleware.WriteError(w, resp)
}

// extractToken extracts the token from the request using configured sources
func (m *TokenMiddleware) extractToken(r *http.Request) (string, error) {
	for _, source := range m.sources {
		value := strings.TrimSpace(r.Header.Get(source.Name))
		if value == "" {
			continue
		}

		if source.Scheme == "" {
			return value, nil
		}

		scheme, token, ok := strings.Cut(value, " ")
		if ok && strings.EqualFold(scheme, source.Scheme) && token != "" {
			return strings.TrimSpace(token), nil
		}
	}

	return "", fmt.Errorf("no token found")
}

// Context key for token info
type contextKey string

// #nosec G101 - This is a context key constant, not a credential
const tokenInfoKey contextKey = "token_info"

// GetTokenInfo retrieves the authenticated token's info from request context
func GetTokenInfo(ctx context.Context) (*TokenInfo, bool) {
	info, ok := ctx.Value(tokenInfoKey).(*TokenInfo)
	return info, ok
}
