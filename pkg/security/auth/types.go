package auth

import "errors"

var (
	// ErrInvalidToken is returned for tokens that match no configured token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenDisabled is returned for configured tokens that are disabled.
	ErrTokenDisabled = errors.New("token disabled")
)

// TokenInfo represents a bearer token with metadata
type TokenInfo struct {
	Name    string
	Value   string
	Enabled bool
}

// TokenStore stores and validates tokens
type TokenStore interface {
	Validate(token string) (*TokenInfo, error)
	List() []*TokenInfo
}
