// Package checkout turns a session cart into recorded purchases.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go-ebook-store/cart"
	"go-ebook-store/events"
	"go-ebook-store/models"
	"go-ebook-store/session"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotAuthenticated is returned when the session has no logged-in user.
	ErrNotAuthenticated = errors.New("login required")
	// ErrEmptyCart is returned when no book in the cart can be resolved.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingPayment is returned when a payment field is blank.
	ErrMissingPayment = errors.New("payment details are incomplete")
)

// PaymentDetails is the free-form payer metadata collected at checkout.
// It is never sent to a payment processor.
type PaymentDetails struct {
	TaxID  string
	Phone  string
	Method string
}

func (p PaymentDetails) validate() error {
	if strings.TrimSpace(p.TaxID) == "" || strings.TrimSpace(p.Phone) == "" || strings.TrimSpace(p.Method) == "" {
		return ErrMissingPayment
	}
	return nil
}

// Receipt echoes what was submitted and charged.
type Receipt struct {
	Payment PaymentDetails
	Total   decimal.Decimal
	BookIDs []uint
}

// Recorder persists purchases atomically.
type Recorder interface {
	Record(ctx context.Context, userID uint, books []models.Book, at time.Time) error
}

// Notifier delivers purchased files by e-mail.
type Notifier interface {
	Send(ctx context.Context, to string, attachments []string) (bool, string)
}

// Service completes checkouts.
type Service struct {
	Catalog  cart.Catalog
	Recorder Recorder
	Notifier Notifier         // optional
	Events   events.Publisher // optional
	EbookDir string
	Now      func() time.Time
}

// Complete records the session's cart as purchases.
//
// The purchase and history rows are written in one transaction and the cart
// is cleared only after it commits. Event publishing and e-mail delivery run
// afterwards; their failures are logged and never undo the purchase.
func (s *Service) Complete(ctx context.Context, sess *session.Session, pay PaymentDetails, deliverByEmail bool) (Receipt, error) {
	if !sess.LoggedIn {
		return Receipt{}, ErrNotAuthenticated
	}
	if err := pay.validate(); err != nil {
		return Receipt{}, err
	}

	books, err := sess.Cart.Resolve(ctx, s.Catalog)
	if err != nil {
		return Receipt{}, fmt.Errorf("resolve cart: %w", err)
	}
	if len(books) == 0 {
		return Receipt{}, ErrEmptyCart
	}
	total := models.SumPrices(books)
	now := s.now()

	if err := s.Recorder.Record(ctx, sess.UserID, books, now); err != nil {
		return Receipt{}, fmt.Errorf("record purchase: %w", err)
	}
	sess.Cart.Clear()

	ids := make([]uint, 0, len(books))
	titles := make([]string, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
		titles = append(titles, b.Title)
	}
	slog.Info("purchase recorded", "user_id", sess.UserID, "books", len(books), "total", total.StringFixed(2))

	if s.Events != nil {
		ev := events.PurchaseEvent{
			UserID:        sess.UserID,
			BookIDs:       ids,
			Titles:        titles,
			Total:         total,
			PaymentMethod: pay.Method,
			PurchasedAt:   now,
		}
		if err := s.Events.PublishPurchase(ctx, ev); err != nil {
			slog.Warn("publish purchase event", "user_id", sess.UserID, "err", err)
		}
	}

	if deliverByEmail && s.Notifier != nil {
		ok, msg := s.Notifier.Send(ctx, sess.UserEmail, s.attachments(books))
		if !ok {
			slog.Warn("ebook delivery failed", "user_id", sess.UserID, "reason", msg)
		}
	}

	return Receipt{Payment: pay, Total: total, BookIDs: ids}, nil
}

func (s *Service) attachments(books []models.Book) []string {
	paths := make([]string, 0, len(books))
	for _, b := range books {
		if b.File == "" {
			continue
		}
		paths = append(paths, filepath.Join(s.EbookDir, b.File))
	}
	return paths
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
