package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/tmm-digital/quote-api/internal/account"
	"github.com/tmm-digital/quote-api/internal/common"
	"github.com/tmm-digital/quote-api/internal/repo"
)

const (
	httpStatusBadRequest   = 400
	httpStatusUnauthorized = 401
	httpStatusForbidden    = 403
	httpStatusConflict     = 409

	defaultAccessTTL = 15 * time.Minute
	defaultTrialTTL  = 7 * 24 * time.Hour
)

// UserStore captures the account queries the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u repo.User) error
	GetByEmail(ctx context.Context, email string) (repo.User, error)
	TouchLogin(ctx context.Context, id string, at time.Time) error
}

// Service coordinates signup, login, and access token handling.
type Service struct {
	users     UserStore
	secret    []byte
	inviteKey string
	accessTTL time.Duration
	trialTTL  time.Duration
	now       func() time.Time
	signer    jwa.SignatureAlgorithm
	issuer    string
	audience  string
}

// Config configures the auth service.
type Config struct {
	Users          UserStore
	Secret         string
	InviteKey      string
	AccessTokenTTL time.Duration
	TrialPeriod    time.Duration
	Issuer         string
	Audience       string
}

// User is the safe subset returned to clients after signup or login.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Tier        string    `json:"tier"`
	TrialEndsAt time.Time `json:"trialEndsAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LoginResult bundles the token material returned after a successful login.
type LoginResult struct {
	User         User      `json:"user"`
	AccessToken  string    `json:"accessToken"`
	AccessExpiry time.Time `json:"accessExpiresAt"`
}

// NewService constructs a Service with sane defaults.
func NewService(cfg Config) (*Service, error) {
	if cfg.Users == nil {
		return nil, errors.New("auth: user store is required")
	}
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	accessTTL := cfg.AccessTokenTTL
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	trialTTL := cfg.TrialPeriod
	if trialTTL <= 0 {
		trialTTL = defaultTrialTTL
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = "quote-api"
	}
	audience := strings.TrimSpace(cfg.Audience)
	if audience == "" {
		audience = "quote-frontend"
	}
	return &Service{
		users:     cfg.Users,
		secret:    []byte(secret),
		inviteKey: cfg.InviteKey,
		accessTTL: accessTTL,
		trialTTL:  trialTTL,
		now:       time.Now,
		signer:    jwa.HS256,
		issuer:    issuer,
		audience:  audience,
	}, nil
}

// WithNow allows tests to override the time provider.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Register creates an account. Signup is invite-only; new accounts start on
// the free tier with an active trial window.
func (s *Service) Register(ctx context.Context, name, email, password, inviteKey string) (User, error) {
	if s.inviteKey != "" && inviteKey != s.inviteKey {
		return User{}, common.NewAppError("INVITE_REQUIRED", "please contact admin", httpStatusForbidden, nil)
	}
	if strings.TrimSpace(name) == "" {
		return User{}, common.NewAppError("VALIDATION_ERROR", "name is required", httpStatusBadRequest, nil)
	}
	normalizedEmail := strings.TrimSpace(strings.ToLower(email))
	if normalizedEmail == "" {
		return User{}, common.NewAppError("VALIDATION_ERROR", "email is required", httpStatusBadRequest, nil)
	}
	if len(password) < 8 {
		return User{}, common.NewAppError("VALIDATION_ERROR", "password must be at least 8 characters", httpStatusBadRequest, nil)
	}

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u := repo.User{
		ID:           uuid.NewString(),
		Email:        normalizedEmail,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Tier:         string(account.TierFree),
		TrialEndsAt:  now.Add(s.trialTTL),
		TrialActive:  true,
		CreatedAt:    now,
		LastLoginAt:  now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if repo.IsUniqueViolation(err) {
			return User{}, common.NewAppError("EMAIL_ALREADY_USED", "email is already registered", httpStatusConflict, err)
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return publicUser(u), nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	normalizedEmail := strings.TrimSpace(strings.ToLower(email))
	if normalizedEmail == "" || password == "" {
		return LoginResult{}, common.NewAppError("INVALID_CREDENTIALS", "invalid email or password", httpStatusUnauthorized, nil)
	}
	u, err := s.users.GetByEmail(ctx, normalizedEmail)
	if err != nil {
		return LoginResult{}, common.NewAppError("INVALID_CREDENTIALS", "invalid email or password", httpStatusUnauthorized, nil)
	}
	ok, err := argon2id.ComparePasswordAndHash(password, u.PasswordHash)
	if err != nil || !ok {
		return LoginResult{}, common.NewAppError("INVALID_CREDENTIALS", "invalid email or password", httpStatusUnauthorized, nil)
	}

	token, expiry, err := s.signAccessToken(u.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign access token: %w", err)
	}
	_ = s.users.TouchLogin(ctx, u.ID, s.now())

	return LoginResult{User: publicUser(u), AccessToken: token, AccessExpiry: expiry}, nil
}

// ParseAccessToken validates an access token and returns the subject (user ID).
func (s *Service) ParseAccessToken(token string) (string, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", common.NewAppError("UNAUTHORIZED", "missing token", httpStatusUnauthorized, nil)
	}
	algorithm, err := extractTokenAlgorithm(trimmed)
	if err != nil {
		return "", common.NewAppError("UNAUTHORIZED", "invalid token", httpStatusUnauthorized, err)
	}
	if algorithm != s.signer {
		return "", common.NewAppError("UNAUTHORIZED", "invalid token", httpStatusUnauthorized, fmt.Errorf("unexpected token algorithm %s", algorithm))
	}
	parsed, err := jwt.ParseString(trimmed,
		jwt.WithKey(algorithm, s.secret),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithClock(jwt.ClockFunc(s.now)),
	)
	if err != nil {
		return "", common.NewAppError("UNAUTHORIZED", "invalid token", httpStatusUnauthorized, err)
	}
	return parsed.Subject(), nil
}

func (s *Service) signAccessToken(userID string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTTL)
	token, err := jwt.NewBuilder().
		Subject(userID).
		Issuer(s.issuer).
		Audience([]string{s.audience}).
		IssuedAt(now).
		Expiration(expiresAt).
		Build()
	if err != nil {
		return "", time.Time{}, err
	}
	signed, err := jwt.Sign(token, jwt.WithKey(s.signer, s.secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return string(signed), expiresAt, nil
}

func extractTokenAlgorithm(token string) (jwa.SignatureAlgorithm, error) {
	message, err := jws.ParseString(token)
	if err != nil {
		return "", err
	}
	signatures := message.Signatures()
	if len(signatures) == 0 {
		return "", errors.New("auth: token contains no signatures")
	}
	headers := signatures[0].ProtectedHeaders()
	if headers == nil {
		return "", errors.New("auth: token missing protected headers")
	}
	return headers.Algorithm(), nil
}

func publicUser(u repo.User) User {
	return User{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Tier:        u.Tier,
		TrialEndsAt: u.TrialEndsAt,
		CreatedAt:   u.CreatedAt,
	}
}
