package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tmm-digital/quote-api/internal/account"
	"github.com/tmm-digital/quote-api/internal/common"
	"github.com/tmm-digital/quote-api/internal/repo"
)

type fakeUsers struct {
	users map[string]repo.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (repo.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repo.User{}, repo.ErrNoRows
	}
	return u, nil
}

func (f *fakeUsers) IncrementQuotesUsed(_ context.Context, id string) error {
	u := f.users[id]
	u.QuotesUsed++
	f.users[id] = u
	return nil
}

func (f *fakeUsers) IncrementExportsUsed(_ context.Context, id string) error {
	u := f.users[id]
	u.ExportsUsed++
	f.users[id] = u
	return nil
}

func (f *fakeUsers) EndTrial(_ context.Context, id string) error {
	u := f.users[id]
	u.TrialActive = false
	f.users[id] = u
	return nil
}

func newTestService(users ...repo.User) (*account.Service, *fakeUsers) {
	store := &fakeUsers{users: map[string]repo.User{}}
	for _, u := range users {
		store.users[u.ID] = u
	}
	svc := &account.Service{
		Users: store,
		Now:   func() time.Time { return time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC) },
	}
	return svc, store
}

func TestQuoteLimitPerTier(t *testing.T) {
	svc, store := newTestService(
		repo.User{ID: "free-at-limit", Tier: "free", QuotesUsed: 3},
		repo.User{ID: "free-under", Tier: "free", QuotesUsed: 2},
		repo.User{ID: "premium", Tier: "premium", QuotesUsed: 9000},
	)
	ctx := context.Background()

	err := svc.ConsumeQuoteSubmission(ctx, "free-at-limit")
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "LIMIT_EXCEEDED", appErr.Code)
	require.Equal(t, 403, appErr.HTTPStatus)
	require.Equal(t, 3, store.users["free-at-limit"].QuotesUsed)

	require.NoError(t, svc.ConsumeQuoteSubmission(ctx, "free-under"))
	require.Equal(t, 3, store.users["free-under"].QuotesUsed)

	require.NoError(t, svc.ConsumeQuoteSubmission(ctx, "premium"))
}

func TestExportLimit(t *testing.T) {
	svc, _ := newTestService(repo.User{ID: "std", Tier: "standard", ExportsUsed: 15})
	err := svc.ConsumeExport(context.Background(), "std")
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "LIMIT_EXCEEDED", appErr.Code)
}

func TestAllowAdvanced(t *testing.T) {
	svc, _ := newTestService(
		repo.User{ID: "free", Tier: "free"},
		repo.User{ID: "std", Tier: "standard"},
	)
	ctx := context.Background()

	allowed, err := svc.AllowAdvanced(ctx, "free")
	require.NoError(t, err)
	require.False(t, allowed)

	allowed, err = svc.AllowAdvanced(ctx, "std")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestTrialExpiresLazily(t *testing.T) {
	svc, store := newTestService(repo.User{
		ID:          "trial",
		Tier:        "free",
		TrialActive: true,
		TrialEndsAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	profile, err := svc.Profile(context.Background(), "trial")
	require.NoError(t, err)
	require.False(t, profile.TrialActive)
	require.False(t, store.users["trial"].TrialActive)
}

func TestProfileUnknownUser(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Profile(context.Background(), "ghost")
	require.ErrorIs(t, err, account.ErrUserNotFound)
}
