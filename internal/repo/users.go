package repo

import (
	"context"
	"time"
)

// User is the account row.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Tier         string
	QuotesUsed   int
	ExportsUsed  int
	TrialEndsAt  time.Time
	TrialActive  bool
	CreatedAt    time.Time
	LastLoginAt  time.Time
}

// Users persists accounts with hand-written pgx queries.
type Users struct {
	DB DBTX
}

const userColumns = `id, email, name, password_hash, tier, quotes_used, exports_used, trial_ends_at, trial_active, created_at, last_login_at`

func scanUser(row interface{ Scan(dest ...any) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Tier, &u.QuotesUsed, &u.ExportsUsed, &u.TrialEndsAt, &u.TrialActive, &u.CreatedAt, &u.LastLoginAt)
	if err != nil {
		return User{}, mapRowErr(err)
	}
	return u, nil
}

// Create inserts a new account.
func (r Users) Create(ctx context.Context, u User) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Tier, u.QuotesUsed, u.ExportsUsed, u.TrialEndsAt, u.TrialActive, u.CreatedAt, u.LastLoginAt)
	return err
}

// GetByEmail finds an account by lowercased email.
func (r Users) GetByEmail(ctx context.Context, email string) (User, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = lower($1)`, email)
	return scanUser(row)
}

// GetByID finds an account by id.
func (r Users) GetByID(ctx context.Context, id string) (User, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// TouchLogin records a successful login.
func (r Users) TouchLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, id, at)
	return err
}

// IncrementQuotesUsed bumps the submitted-quote counter.
func (r Users) IncrementQuotesUsed(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET quotes_used = quotes_used + 1 WHERE id = $1`, id)
	return err
}

// IncrementExportsUsed bumps the export counter.
func (r Users) IncrementExportsUsed(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET exports_used = exports_used + 1 WHERE id = $1`, id)
	return err
}

// EndTrial flips the trial flag off.
func (r Users) EndTrial(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET trial_active = false WHERE id = $1`, id)
	return err
}

// SetTier moves an account to a new subscription tier.
func (r Users) SetTier(ctx context.Context, id, tier string) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET tier = $2 WHERE id = $1`, id, tier)
	return err
}
