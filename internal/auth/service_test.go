package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/tmm-digital/quote-api/internal/auth"
	"github.com/tmm-digital/quote-api/internal/common"
	"github.com/tmm-digital/quote-api/internal/repo"
)

type fakeUserStore struct {
	byEmail map[string]repo.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]repo.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u repo.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (repo.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return repo.User{}, repo.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) TouchLogin(_ context.Context, _ string, _ time.Time) error {
	return nil
}

func newTestService(t *testing.T) (*auth.Service, *fakeUserStore) {
	t.Helper()
	store := newFakeUserStore()
	svc, err := auth.NewService(auth.Config{
		Users:          store,
		Secret:         "test-secret-test-secret-test-secret",
		InviteKey:      "Welcome123",
		AccessTokenTTL: 15 * time.Minute,
		TrialPeriod:    7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	svc.WithNow(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })
	return svc, store
}

func TestRegisterRequiresInviteKey(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@example.com", "supersecret", "wrong-key")
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "INVITE_REQUIRED", appErr.Code)

	user, err := svc.Register(ctx, "Asha", "Asha@Example.com", "supersecret", "Welcome123")
	require.NoError(t, err)
	require.Equal(t, "asha@example.com", user.Email)
	require.Equal(t, "free", user.Tier)
	require.Equal(t, time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC), user.TrialEndsAt)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@example.com", "supersecret", "Welcome123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Asha", "asha@example.com", "supersecret", "Welcome123")
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "EMAIL_ALREADY_USED", appErr.Code)
	require.Equal(t, 409, appErr.HTTPStatus)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "a@b.c", "supersecret", "Welcome123")
	require.Error(t, err)
	_, err = svc.Register(ctx, "A", "a@b.c", "short", "Welcome123")
	require.Error(t, err)
}

func TestLoginAndTokenRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Asha", "asha@example.com", "supersecret", "Welcome123")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "asha@example.com", "supersecret")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)

	subject, err := svc.ParseAccessToken(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, subject)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@example.com", "supersecret", "Welcome123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "asha@example.com", "not-the-password")
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "INVALID_CREDENTIALS", appErr.Code)

	_, err = svc.Login(ctx, "ghost@example.com", "whatever")
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@example.com", "supersecret", "Welcome123")
	require.NoError(t, err)
	result, err := svc.Login(ctx, "asha@example.com", "supersecret")
	require.NoError(t, err)

	svc.WithNow(func() time.Time { return time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC) })
	_, err = svc.ParseAccessToken(result.AccessToken)
	require.Error(t, err)
}

func TestRequireAuthMiddleware(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Asha", "asha@example.com", "supersecret", "Welcome123")
	require.NoError(t, err)
	result, err := svc.Login(ctx, "asha@example.com", "supersecret")
	require.NoError(t, err)

	mw := auth.Middleware{Service: svc}
	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, _ = common.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+result.AccessToken)
	rec := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, user.ID, seenUserID)

	// no token
	rec = httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
