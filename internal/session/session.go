// Package session carries the per-request session state and encodes the
// session cookie. A Session is created by middleware for every request and
// travels in the request context; nothing about it is shared across requests.
package session

import (
	"context"

	"movie-review/internal/data/entity"

	"github.com/google/uuid"
)

type contextKey struct{}

type Session struct {
	UserID int64
	Token  uuid.UUID

	flash     string // shown on the current response
	nextFlash string // carried to the next request in a cookie
	changed   bool

	user       *entity.User
	userLoaded bool
}

func New() *Session {
	return &Session{}
}

// IsLoggedIn reports whether the session holds a user id.
func (s *Session) IsLoggedIn() bool {
	return s != nil && s.UserID != 0
}

// Authenticate binds the session to userID with the server-side token.
func (s *Session) Authenticate(userID int64, token uuid.UUID) {
	s.UserID = userID
	s.Token = token
	s.user = nil
	s.userLoaded = false
	s.changed = true
}

// Restore binds a session read from a valid cookie without marking it changed.
func (s *Session) Restore(userID int64, token uuid.UUID) {
	s.UserID = userID
	s.Token = token
}

// Clear drops all session state, including any pending flash.
func (s *Session) Clear() {
	*s = Session{changed: true}
}

// Changed reports whether the session cookie must be rewritten.
func (s *Session) Changed() bool {
	return s.changed
}

// CachedUser returns the memoised current user, if it was looked up already.
func (s *Session) CachedUser() (*entity.User, bool) {
	return s.user, s.userLoaded
}

func (s *Session) CacheUser(user *entity.User) {
	s.user = user
	s.userLoaded = true
}

// FlashNow sets a message for the response being rendered.
func (s *Session) FlashNow(msg string) {
	s.flash = msg
}

// SetFlash queues a message for the next rendered page.
func (s *Session) SetFlash(msg string) {
	s.nextFlash = msg
}

func (s *Session) Flash() string {
	return s.flash
}

func (s *Session) PendingFlash() string {
	return s.nextFlash
}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the request session, or an anonymous one when the
// session middleware did not run.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok && s != nil {
		return s
	}
	return New()
}
