package quote

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tmm-digital/quote-api/internal/cart"
	"github.com/tmm-digital/quote-api/internal/common"
	"github.com/tmm-digital/quote-api/internal/lock"
	"github.com/tmm-digital/quote-api/internal/obs"
	"github.com/tmm-digital/quote-api/internal/repo"
)

var (
	ErrQuoteNotFound    = errors.New("quote not found")
	ErrEmptyCart        = errors.New("cart has no priced items")
	ErrAlreadySubmitted = errors.New("quote already submitted")
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"

	sequenceTTL   = 40 * 24 * time.Hour
	sequenceWidth = 5
)

// Store is the persistence surface Finalize and friends need. repo.Quotes
// satisfies it; tests plug in an in-memory fake.
type Store interface {
	Insert(ctx context.Context, q repo.Quote) error
	GetByID(ctx context.Context, id string) (repo.Quote, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]repo.Quote, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	MarkSubmitted(ctx context.Context, id, userID string, at time.Time) error
}

// Entitlements gates quote submission against the user's subscription tier.
type Entitlements interface {
	ConsumeQuoteSubmission(ctx context.Context, userID string) error
}

// Service finalizes carts into immutable quotes and serves them back out.
type Service struct {
	Quotes       Store
	Carts        *cart.Service
	Accounts     Entitlements
	Locker       lock.Locker
	R            *redis.Client
	NumberPrefix string
	Currency     string
	ShareBaseURL string
	Now          func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) prefix() string {
	if s.NumberPrefix != "" {
		return s.NumberPrefix
	}
	return "TMM"
}

// Finalize freezes the cart into a quote document, assigns identifiers and
// persists the snapshot. The cart itself is left untouched so the visitor can
// keep editing and finalize again.
func (s *Service) Finalize(ctx context.Context, userID, cartID string) (*Snapshot, error) {
	c, err := s.Carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	totals := s.Carts.CartTotals(c)
	if totals.Summary.Subtotal <= 0 {
		return nil, common.NewAppError("CART_EMPTY", "cart has no priced items", http.StatusUnprocessableEntity, ErrEmptyCart)
	}

	now := s.now()
	snap := snapshotFromCart(c, totals, s.Currency)
	snap.ID = s.newQuoteID(now)
	snap.UserID = userID
	snap.CreatedAt = now.UTC()
	number, err := s.nextQuoteNumber(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("assign quote number: %w", err)
	}
	snap.QuoteNumber = number

	doc, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode quote snapshot: %w", err)
	}
	row := repo.Quote{
		ID:          snap.ID,
		UserID:      userID,
		QuoteNumber: snap.QuoteNumber,
		Snapshot:    doc,
		Subtotal:    int64(totals.Summary.Subtotal),
		Discount:    int64(totals.Summary.Discount),
		Tax:         int64(totals.Summary.Tax),
		Total:       int64(totals.Summary.Total),
		Status:      StatusDraft,
		CreatedAt:   snap.CreatedAt,
	}
	if err := s.Quotes.Insert(ctx, row); err != nil {
		if obs.QuoteFinalizedTotal != nil {
			obs.QuoteFinalizedTotal.WithLabelValues("error").Inc()
		}
		return nil, fmt.Errorf("persist quote: %w", err)
	}
	if obs.QuoteFinalizedTotal != nil {
		obs.QuoteFinalizedTotal.WithLabelValues("ok").Inc()
	}
	if obs.QuoteValue != nil {
		obs.QuoteValue.Observe(float64(row.Total))
	}
	return &snap, nil
}

// Shared returns the stored snapshot exactly as finalized. It backs the
// unauthenticated share link, so the raw document is handed out byte for byte.
func (s *Service) Shared(ctx context.Context, id string) (json.RawMessage, error) {
	row, err := s.Quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return nil, common.NewAppError("QUOTE_NOT_FOUND", "quote not found", http.StatusNotFound, ErrQuoteNotFound)
		}
		return nil, err
	}
	return json.RawMessage(row.Snapshot), nil
}

// HistoryEntry is the listing projection: indexed totals only, no snapshot.
type HistoryEntry struct {
	ID          string     `json:"id"`
	QuoteNumber string     `json:"quoteNumber"`
	Subtotal    int64      `json:"subtotal"`
	Discount    int64      `json:"discount"`
	Tax         int64      `json:"tax"`
	Total       int64      `json:"total"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}

// History lists the user's quotes, newest first.
func (s *Service) History(ctx context.Context, userID string, page, perPage int) ([]HistoryEntry, common.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	rows, err := s.Quotes.ListByUser(ctx, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, common.Pagination{}, err
	}
	total, err := s.Quotes.CountByUser(ctx, userID)
	if err != nil {
		return nil, common.Pagination{}, err
	}
	entries := make([]HistoryEntry, 0, len(rows))
	for _, q := range rows {
		entries = append(entries, HistoryEntry{
			ID:          q.ID,
			QuoteNumber: q.QuoteNumber,
			Subtotal:    q.Subtotal,
			Discount:    q.Discount,
			Tax:         q.Tax,
			Total:       q.Total,
			Status:      q.Status,
			CreatedAt:   q.CreatedAt,
			SubmittedAt: q.SubmittedAt,
		})
	}
	return entries, common.Pagination{Page: page, PerPage: perPage, TotalItems: int(total)}, nil
}

// Submit transitions a draft to submitted. The tier limit is checked and
// consumed first so a user over quota sees a refusal before anything changes.
func (s *Service) Submit(ctx context.Context, userID, id string) error {
	row, err := s.Quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return common.NewAppError("QUOTE_NOT_FOUND", "quote not found", http.StatusNotFound, ErrQuoteNotFound)
		}
		return err
	}
	if row.UserID != userID {
		return common.NewAppError("QUOTE_NOT_FOUND", "quote not found", http.StatusNotFound, ErrQuoteNotFound)
	}
	if row.Status != StatusDraft {
		return common.NewAppError("QUOTE_ALREADY_SUBMITTED", "quote was already submitted", http.StatusConflict, ErrAlreadySubmitted)
	}
	if err := s.Accounts.ConsumeQuoteSubmission(ctx, userID); err != nil {
		if obs.QuoteSubmittedTotal != nil {
			obs.QuoteSubmittedTotal.WithLabelValues("limit").Inc()
		}
		return err
	}
	if err := s.Quotes.MarkSubmitted(ctx, id, userID, s.now().UTC()); err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return common.NewAppError("QUOTE_ALREADY_SUBMITTED", "quote was already submitted", http.StatusConflict, ErrAlreadySubmitted)
		}
		return err
	}
	if obs.QuoteSubmittedTotal != nil {
		obs.QuoteSubmittedTotal.WithLabelValues("ok").Inc()
	}
	return nil
}

// ShareLinks are the two ways a finalized quote travels: a direct URL and a
// prefilled WhatsApp message.
type ShareLinks struct {
	URL      string `json:"url"`
	WhatsApp string `json:"whatsapp"`
}

// Share builds share links for an existing quote.
func (s *Service) Share(ctx context.Context, id string) (ShareLinks, error) {
	row, err := s.Quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return ShareLinks{}, common.NewAppError("QUOTE_NOT_FOUND", "quote not found", http.StatusNotFound, ErrQuoteNotFound)
		}
		return ShareLinks{}, err
	}
	link := fmt.Sprintf("%s/?quote=%s", s.ShareBaseURL, url.QueryEscape(row.ID))
	message := fmt.Sprintf(
		"Hi! I've prepared a quote (%s) for digital marketing services worth %s. Take a look: %s",
		row.QuoteNumber, common.FormatINR(row.Total), link)
	return ShareLinks{
		URL:      link,
		WhatsApp: "https://wa.me/?text=" + url.QueryEscape(message),
	}, nil
}

// newQuoteID builds the external quote id: prefix, millisecond timestamp and
// a short random base36 suffix.
func (s *Service) newQuoteID(now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", s.prefix(), now.UnixMilli(), randBase36(9))
}

// nextQuoteNumber assigns the human-facing sequential number for the month.
// The counter increment runs under a distributed lock so numbers stay in step
// with insertion order across instances.
func (s *Service) nextQuoteNumber(ctx context.Context, now time.Time) (string, error) {
	period := now.UTC().Format("200601")
	seqKey := "quote:seq:" + period
	var seq int64
	err := s.Locker.WithLock(ctx, "lock:"+seqKey, 5*time.Second, func(ctx context.Context) error {
		n, err := s.R.Incr(ctx, seqKey).Result()
		if err != nil {
			return err
		}
		seq = n
		return s.R.Expire(ctx, seqKey, sequenceTTL).Err()
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%0*d", s.prefix(), period, sequenceWidth, seq), nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randBase36(n int) string {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(base36)))
	for i := range buf {
		v, err := crand.Int(crand.Reader, max)
		if err != nil {
			buf[i] = base36[i%len(base36)]
			continue
		}
		buf[i] = base36[v.Int64()]
	}
	return string(buf)
}
