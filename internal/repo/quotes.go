package repo

import (
	"context"
	"time"
)

// Quote is the persisted immutable quote row. Snapshot holds the full JSON
// document as finalized; the indexed totals support history listings without
// unpacking it.
type Quote struct {
	ID          string
	UserID      string
	QuoteNumber string
	Snapshot    []byte
	Subtotal    int64
	Discount    int64
	Tax         int64
	Total       int64
	Status      string
	CreatedAt   time.Time
	SubmittedAt *time.Time
}

// Quotes persists finalized quotes with hand-written pgx queries.
type Quotes struct {
	DB DBTX
}

const quoteColumns = `id, user_id, quote_number, snapshot, subtotal, discount, tax, total, status, created_at, submitted_at`

func scanQuote(row interface{ Scan(dest ...any) error }) (Quote, error) {
	var q Quote
	err := row.Scan(&q.ID, &q.UserID, &q.QuoteNumber, &q.Snapshot, &q.Subtotal, &q.Discount, &q.Tax, &q.Total, &q.Status, &q.CreatedAt, &q.SubmittedAt)
	if err != nil {
		return Quote{}, mapRowErr(err)
	}
	return q, nil
}

// Insert stores a freshly finalized quote.
func (r Quotes) Insert(ctx context.Context, q Quote) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO quotes (`+quoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		q.ID, q.UserID, q.QuoteNumber, q.Snapshot, q.Subtotal, q.Discount, q.Tax, q.Total, q.Status, q.CreatedAt, q.SubmittedAt)
	return err
}

// GetByID loads one quote.
func (r Quotes) GetByID(ctx context.Context, id string) (Quote, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id)
	return scanQuote(row)
}

// ListByUser returns a page of the user's quotes, newest first.
func (r Quotes) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Quote, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+quoteColumns+` FROM quotes
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var quotes []Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// CountByUser returns the user's total quote count.
func (r Quotes) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.DB.QueryRow(ctx, `SELECT count(*) FROM quotes WHERE user_id = $1`, userID).Scan(&total)
	return total, err
}

// MarkSubmitted transitions a draft to submitted. It reports ErrNoRows when
// the quote is missing or not owned by the user.
func (r Quotes) MarkSubmitted(ctx context.Context, id, userID string, at time.Time) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE quotes SET status = 'submitted', submitted_at = $3
		WHERE id = $1 AND user_id = $2 AND status = 'draft'`, id, userID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}
