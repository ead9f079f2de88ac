package session

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"movie-review/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidCookie = errors.New("invalid session cookie")

// Claims is the signed payload of the session cookie. The JWT ID is the
// server-side session token.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager signs, reads and clears the session and flash cookies.
type Manager struct {
	secret     []byte
	issuer     string
	ttl        time.Duration
	cookieName string
	secure     bool
}

func NewManager(config utils.SessionConfig, issuer string) *Manager {
	ttl := time.Duration(config.ExpiryHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	name := config.CookieName
	if name == "" {
		name = "movie_review_session"
	}

	return &Manager{
		secret:     []byte(config.Secret),
		issuer:     issuer,
		ttl:        ttl,
		cookieName: name,
		secure:     config.Secure,
	}
}

// TTL is how long a session stays valid after login.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

func (m *Manager) flashCookieName() string {
	return m.cookieName + "_flash"
}

// Encode signs token into a cookie value.
func (m *Manager) Encode(token uuid.UUID, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        token.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Decode verifies a cookie value and returns the session token it names.
func (m *Manager) Decode(value string) (uuid.UUID, error) {
	t, err := jwt.ParseWithClaims(value, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return uuid.Nil, ErrInvalidCookie
	}

	token, err := uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}
	return token, nil
}

// ReadToken returns the token from the request's session cookie.
// ok is false when there is no cookie; err is set when it is present but invalid.
func (m *Manager) ReadToken(r *http.Request) (token uuid.UUID, ok bool, err error) {
	c, err := r.Cookie(m.cookieName)
	if err != nil || c.Value == "" {
		return uuid.Nil, false, nil
	}
	token, err = m.Decode(c.Value)
	if err != nil {
		return uuid.Nil, false, err
	}
	return token, true, nil
}

// ReadFlash returns the flash carried over from the previous response and
// expires its cookie.
func (m *Manager) ReadFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(m.flashCookieName())
	if err != nil || c.Value == "" {
		return ""
	}
	m.setCookie(w, m.flashCookieName(), "", -1)

	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}

// Save writes the session cookie when the session changed, and the pending
// flash if any. It must be called before the response header is written.
func (m *Manager) Save(w http.ResponseWriter, s *Session) error {
	if s.Changed() {
		if s.IsLoggedIn() {
			value, err := m.Encode(s.Token, time.Now())
			if err != nil {
				return fmt.Errorf("sign session cookie: %w", err)
			}
			m.setCookie(w, m.cookieName, value, int(m.ttl.Seconds()))
		} else {
			m.Expire(w)
		}
	}

	if msg := s.PendingFlash(); msg != "" {
		m.setCookie(w, m.flashCookieName(), url.QueryEscape(msg), 60)
	}

	return nil
}

// Expire removes the session cookie from the client.
func (m *Manager) Expire(w http.ResponseWriter) {
	m.setCookie(w, m.cookieName, "", -1)
}

func (m *Manager) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
