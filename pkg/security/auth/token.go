package auth

import (
	"crypto/subtle"
	"sort"
	"sync"

	"cheddar-hq/adapter/pkg/config"
)

// TokenValidator validates bearer tokens against a configured set.
// Comparisons run in constant time over every configured token.
type TokenValidator struct {
	mu     sync.RWMutex
	tokens map[string]*TokenInfo
}

// NewTokenValidator creates a new token validator with the given tokens,
// keyed by name.
func NewTokenValidator(tokens []*TokenInfo) *TokenValidator {
	tokenMap := make(map[string]*TokenInfo, len(tokens))
	for _, token := range tokens {
		tokenMap[token.Name] = token
	}

	return &TokenValidator{
		tokens: tokenMap,
	}
}

// NewTokenValidatorFromConfig builds a validator from admin token settings.
func NewTokenValidatorFromConfig(tokens []config.AdminToken) *TokenValidator {
	infos := make([]*TokenInfo, 0, len(tokens))
	for _, t := range tokens {
		infos = append(infos, &TokenInfo{
			Name:    t.Name,
			Value:   t.Value,
			Enabled: !t.Disabled,
		})
	}
	return NewTokenValidator(infos)
}

// Validate checks if the given token is valid and returns its info
func (v *TokenValidator) Validate(token string) (*TokenInfo, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var match *TokenInfo
	for _, info := range v.tokens {
		if subtle.ConstantTimeCompare([]byte(info.Value), []byte(token)) == 1 {
			match = info
		}
	}

	if match == nil {
		return nil, ErrInvalidToken
	}
	if !match.Enabled {
		return nil, ErrTokenDisabled
	}

	return match, nil
}

// List returns all configured tokens sorted by name
func (v *TokenValidator) List() []*TokenInfo {
	v.mu.RLock()
	defer v.mu.RUnlock()

	tokens := make([]*TokenInfo, 0, len(v.tokens))
	for _, token := range v.tokens {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Name < tokens[j].Name })
	return tokens
}

// Len returns the number of configured tokens
func (v *TokenValidator) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.tokens)
}

// Add adds or replaces a token
func (v *TokenValidator) Add(info *TokenInfo) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tokens[info.Name] = info
}

// Remove removes a token by name
func (v *TokenValidator) Remove(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.tokens, name)
}
