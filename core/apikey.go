package core

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// apiKeyPrefix is the prefix every OpenAI secret key carries.
const apiKeyPrefix = "sk-"

// APIKey is a validated language-model API key.
// The zero value is not a valid key; use NewAPIKey.
type APIKey struct {
	value string
}

// NewAPIKey validates and wraps a raw key.
// Surrounding whitespace is trimmed before validation.
func NewAPIKey(raw string) (APIKey, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return APIKey{}, fmt.Errorf("%w: key cannot be empty", ErrInvalidAPIKey)
	}
	if !strings.HasPrefix(value, apiKeyPrefix) {
		return APIKey{}, fmt.Errorf("%w: key must start with %q", ErrInvalidAPIKey, apiKeyPrefix)
	}
	return APIKey{value: value}, nil
}

// Value returns the raw key for handing to a provider client.
func (k APIKey) Value() string {
	return k.value
}

// IsZero reports whether the key is unset.
func (k APIKey) IsZero() bool {
	return k.value == ""
}

// String masks the key so it can be logged safely.
func (k APIKey) String() string {
	if len(k.value) < 4 {
		return apiKeyPrefix + "***"
	}
	return apiKeyPrefix + "***" + k.value[len(k.value)-4:]
}

// Fingerprint returns a short stable digest of the key.
// Two guilds configured with the same key share a fingerprint.
func (k APIKey) Fingerprint() string {
	if k.value == "" {
		return ""
	}
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(k.value))
	return hex.EncodeToString(h.Sum(nil))
}
