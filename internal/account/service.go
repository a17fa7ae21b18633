package account

import (
	"context"
	"errors"
	"time"

	"github.com/tmm-digital/quote-api/internal/common"
	"github.com/tmm-digital/quote-api/internal/repo"
)

// ErrUserNotFound is returned when the account row is missing.
var ErrUserNotFound = errors.New("user not found")

// UserStore captures the account queries the service needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (repo.User, error)
	IncrementQuotesUsed(ctx context.Context, id string) error
	IncrementExportsUsed(ctx context.Context, id string) error
	EndTrial(ctx context.Context, id string) error
}

// Service answers entitlement questions and enforces tier limits. Limits are
// checked before any persisted mutation so a refused action changes nothing.
type Service struct {
	Users UserStore
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Profile is the account view exposed on /auth/me.
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Tier        Tier      `json:"tier"`
	Features    Features  `json:"features"`
	QuotesUsed  int       `json:"quotesUsed"`
	ExportsUsed int       `json:"exportsUsed"`
	TrialActive bool      `json:"trialActive"`
	TrialEndsAt time.Time `json:"trialEndsAt,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (s *Service) load(ctx context.Context, userID string) (repo.User, error) {
	if s == nil || s.Users == nil {
		return repo.User{}, errors.New("account service not configured")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return repo.User{}, common.NewAppError("NOT_FOUND", "user not found", 404, ErrUserNotFound)
		}
		return repo.User{}, err
	}
	// lazy trial expiry, observed on the next read after the window closes
	if u.TrialActive && s.now().After(u.TrialEndsAt) {
		if err := s.Users.EndTrial(ctx, u.ID); err != nil {
			return repo.User{}, err
		}
		u.TrialActive = false
	}
	return u, nil
}

// Profile assembles the account view.
func (s *Service) Profile(ctx context.Context, userID string) (Profile, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Tier:        Tier(u.Tier),
		Features:    FeaturesFor(Tier(u.Tier)),
		QuotesUsed:  u.QuotesUsed,
		ExportsUsed: u.ExportsUsed,
		TrialActive: u.TrialActive,
		TrialEndsAt: u.TrialEndsAt,
		CreatedAt:   u.CreatedAt,
	}, nil
}

// AllowAdvanced reports whether the user's tier unlocks advanced items.
func (s *Service) AllowAdvanced(ctx context.Context, userID string) (bool, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}
	return FeaturesFor(Tier(u.Tier)).AdvancedFeatures, nil
}

// ConsumeQuoteSubmission checks the quote limit and records one use.
func (s *Service) ConsumeQuoteSubmission(ctx context.Context, userID string) error {
	u, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	features := FeaturesFor(Tier(u.Tier))
	if !withinLimit(u.QuotesUsed, features.QuotesLimit) {
		return common.LimitExceeded("quote limit reached for your plan")
	}
	return s.Users.IncrementQuotesUsed(ctx, u.ID)
}

// ConsumeExport checks the export limit and records one use.
func (s *Service) ConsumeExport(ctx context.Context, userID string) error {
	u, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	features := FeaturesFor(Tier(u.Tier))
	if !withinLimit(u.ExportsUsed, features.ExportsLimit) {
		return common.LimitExceeded("export limit reached for your plan")
	}
	return s.Users.IncrementExportsUsed(ctx, u.ID)
}
