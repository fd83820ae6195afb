package csrf

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/muhammadheryan/storefront/constant"
)

var (
	ErrMissing = errors.New("csrf token missing")
	ErrInvalid = errors.New("csrf token invalid or expired")
)

// Manager signs the per-session raw token into the value handed to browsers
// and checks what they echo back.
type Manager struct {
	codec     *securecookie.SecureCookie
	timeLimit time.Duration
}

func NewManager(secret string, timeLimit time.Duration) *Manager {
	codec := securecookie.New([]byte(secret), nil)
	codec.MaxAge(int(timeLimit / time.Second))
	codec.SetSerializer(securecookie.JSONEncoder{})
	return &Manager{codec: codec, timeLimit: timeLimit}
}

// NewToken returns a fresh random raw token.
func NewToken() string {
	return hex.EncodeToString(securecookie.GenerateRandomKey(32))
}

func (m *Manager) TimeLimit() time.Duration {
	return m.timeLimit
}

// Sign timestamps and authenticates raw.
func (m *Manager) Sign(raw string) (string, error) {
	return m.codec.Encode(constant.CSRFCookieName, raw)
}

// Verify checks a signed token against the session's raw token.
func (m *Manager) Verify(signed, raw string) error {
	if signed == "" {
		return ErrMissing
	}
	var got string
	if err := m.codec.Decode(constant.CSRFCookieName, signed, &got); err != nil {
		return ErrInvalid
	}
	if raw == "" || subtle.ConstantTimeCompare([]byte(got), []byte(raw)) != 1 {
		return ErrInvalid
	}
	return nil
}

// Decode returns the raw token inside a signed one.
func (m *Manager) Decode(signed string) (string, error) {
	var got string
	if err := m.codec.Decode(constant.CSRFCookieName, signed, &got); err != nil {
		return "", ErrInvalid
	}
	return got, nil
}
