// Package session keeps per-visitor state (login, cart, flashes) on the server.
package session

import (
	"go-ebook-store/cart"

	"github.com/google/uuid"
)

// CookieName carries the signed session token.
const CookieName = "bibliotech_session"

// Flash kinds understood by the templates.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashDanger  = "danger"
)

// Flash is a one-time message shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Session is the server-side state of one visitor.
type Session struct {
	ID        string    `json:"id"`
	LoggedIn  bool      `json:"logged_in"`
	UserID    uint      `json:"user_id,omitempty"`
	UserName  string    `json:"user_name,omitempty"`
	UserEmail string    `json:"user_email,omitempty"`
	Cart      cart.Cart `json:"cart"`
	Flashes   []Flash   `json:"flashes,omitempty"`
}

// New returns an empty session with a fresh random ID.
func New() *Session {
	return &Session{ID: uuid.NewString()}
}

// Login records an authenticated user.
func (s *Session) Login(userID uint, name, email string) {
	s.LoggedIn = true
	s.UserID = userID
	s.UserName = name
	s.UserEmail = email
}

// Rotate moves the session to a fresh ID, keeping its state, and returns the old ID.
func (s *Session) Rotate() string {
	old := s.ID
	s.ID = uuid.NewString()
	return old
}

// Reset discards all state except the ID.
func (s *Session) Reset() {
	*s = Session{ID: s.ID}
}

// AddFlash queues a message for the next page.
func (s *Session) AddFlash(kind, message string) {
	s.Flashes = append(s.Flashes, Flash{Kind: kind, Message: message})
}

// PopFlashes returns and clears queued messages.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}
