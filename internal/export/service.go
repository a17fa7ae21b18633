package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tmm-digital/quote-api/internal/common"
	"github.com/tmm-digital/quote-api/internal/obs"
	"github.com/tmm-digital/quote-api/internal/quote"
	"github.com/tmm-digital/quote-api/internal/repo"
)

var (
	ErrQuoteNotFound  = errors.New("quote not found")
	ErrArtifactAbsent = errors.New("export artifact not ready")
	ErrBadFormat      = errors.New("unsupported export format")
)

// QuoteStore is the read surface exports need.
type QuoteStore interface {
	GetByID(ctx context.Context, id string) (repo.Quote, error)
}

// Entitlements gates exports against the user's subscription tier.
type Entitlements interface {
	ConsumeExport(ctx context.Context, userID string) error
}

// Enqueuer abstracts the asynq client so tests can capture tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Service accepts export requests and serves finished artifacts. The actual
// rendering happens on the worker.
type Service struct {
	Quotes   QuoteStore
	Accounts Entitlements
	Tasks    Enqueuer
	R        *redis.Client
	TTL      time.Duration
}

func artifactKey(quoteID, format string) string {
	return "export:" + quoteID + ":" + format
}

func normalizeFormat(format string) (string, error) {
	switch format {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", common.NewAppError("EXPORT_BAD_FORMAT", "unsupported export format", http.StatusUnprocessableEntity, ErrBadFormat)
	}
}

// Request consumes an export allowance and enqueues the rendering job. The
// allowance is checked first so a user over quota sees a refusal before any
// job exists.
func (s *Service) Request(ctx context.Context, userID, quoteID, format string) error {
	format, err := normalizeFormat(format)
	if err != nil {
		return err
	}
	row, err := s.Quotes.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return common.NewAppError("QUOTE_NOT_FOUND", "quote not found", http.StatusNotFound, ErrQuoteNotFound)
		}
		return err
	}
	if row.UserID != userID {
		return common.NewAppError("QUOTE_NOT_FOUND", "quote not found", http.StatusNotFound, ErrQuoteNotFound)
	}
	if err := s.Accounts.ConsumeExport(ctx, userID); err != nil {
		return err
	}
	task, err := NewQuoteExportTask(Payload{QuoteID: quoteID, UserID: userID, Format: format})
	if err != nil {
		return err
	}
	if _, err := s.Tasks.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue export: %w", err)
	}
	return nil
}

// Artifact returns a finished export, or ErrArtifactAbsent while the job is
// still in flight.
func (s *Service) Artifact(ctx context.Context, quoteID, format string) ([]byte, string, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, "", err
	}
	data, err := s.R.Get(ctx, artifactKey(quoteID, format)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, "", ErrArtifactAbsent
	}
	if err != nil {
		return nil, "", err
	}
	contentType := "text/plain; charset=utf-8"
	if format == FormatJSON {
		contentType = "application/json; charset=utf-8"
	}
	return data, contentType, nil
}

// Worker renders export artifacts into Redis.
type Worker struct {
	Quotes QuoteStore
	R      *redis.Client
	TTL    time.Duration
	Logger *zerolog.Logger
}

// HandleQuoteExport is the asynq handler for TypeQuoteExport.
func (w *Worker) HandleQuoteExport(ctx context.Context, task *asynq.Task) error {
	var p Payload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("decode export payload: %w", err)
	}
	row, err := w.Quotes.GetByID(ctx, p.QuoteID)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			// The quote is gone; retrying will not help.
			return nil
		}
		return err
	}

	var artifact []byte
	switch p.Format {
	case FormatJSON:
		artifact = row.Snapshot
	default:
		var snap quote.Snapshot
		if err := json.Unmarshal(row.Snapshot, &snap); err != nil {
			return fmt.Errorf("decode quote snapshot: %w", err)
		}
		artifact = renderText(snap)
	}

	if err := w.R.Set(ctx, artifactKey(p.QuoteID, p.Format), artifact, w.TTL).Err(); err != nil {
		if obs.ExportJobsTotal != nil {
			obs.ExportJobsTotal.WithLabelValues(p.Format, "error").Inc()
		}
		return fmt.Errorf("store export artifact: %w", err)
	}
	if obs.ExportJobsTotal != nil {
		obs.ExportJobsTotal.WithLabelValues(p.Format, "ok").Inc()
	}
	if w.Logger != nil {
		w.Logger.Info().Str("quote_id", p.QuoteID).Str("format", p.Format).Msg("export artifact rendered")
	}
	return nil
}
