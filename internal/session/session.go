// Package session issues and validates the signed token carried by the
// login cookie. The token holds the staff account and display name; no
// server-side session state exists.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/merchco/counterpos/internal/models"
)

// CookieName is the cookie the signed session token travels in.
const CookieName = "pos_session"

// ErrInvalidToken is returned for tokens that fail signature or expiry
// checks.
var ErrInvalidToken = errors.New("invalid session token")

// Claims extends the registered JWT claims with the staff identity.
type Claims struct {
	jwt.RegisteredClaims
	Account string `json:"account"`
	Name    string `json:"name"`
}

// Manager signs and verifies session tokens with a shared HS256 secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager returns a Manager signing with secret; tokens expire after
// ttl.
func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

// Issue returns a signed token for the given staff session.
func (m *Manager) Issue(s models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
		Account: s.Account,
		Name:    s.Name,
	})
	return token.SignedString(m.secret)
}

// Verify parses tokenString and returns the session it encodes.
// Returns ErrInvalidToken for bad signatures, expired tokens, or tokens
// missing the account claim.
func (m *Manager) Verify(tokenString string) (models.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.Account == "" {
		return models.Session{}, ErrInvalidToken
	}
	return models.Session{Account: claims.Account, Name: claims.Name}, nil
}

// FromRequest extracts and verifies the session cookie of r.
func (m *Manager) FromRequest(r *http.Request) (models.Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return models.Session{}, ErrInvalidToken
	}
	return m.Verify(c.Value)
}

// SetCookie attaches a signed session cookie for s to the response.
func (m *Manager) SetCookie(w http.ResponseWriter, s models.Session) error {
	token, err := m.Issue(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie on the response.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
