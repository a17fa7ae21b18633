package requirements

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tmm-digital/quote-api/internal/catalog"
	"github.com/tmm-digital/quote-api/internal/common"
)

// ErrNotOfferedViaForm is returned when the item is priced normally.
var ErrNotOfferedViaForm = errors.New("item does not take a requirements form")

// Submission is a captured requirements form for an item that is quoted
// manually after review.
type Submission struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId,omitempty"`
	ItemID      string    `json:"itemId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Description string    `json:"description"`
	Budget      string    `json:"budget,omitempty"`
	Timeline    string    `json:"timeline,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Service records requirements submissions in Redis for the review team.
type Service struct {
	R       *redis.Client
	Catalog *catalog.Registry
	TTL     time.Duration
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func submissionKey(id string) string {
	return "requirements:" + id
}

const indexKey = "requirements:index"

// Record validates the target item and stores the submission.
func (s *Service) Record(ctx context.Context, sub Submission) (Submission, error) {
	if s == nil || s.R == nil {
		return Submission{}, errors.New("requirements service not configured")
	}
	item, ok := s.Catalog.Item(sub.ItemID)
	if !ok {
		return Submission{}, common.NewAppError("NOT_FOUND", "catalog item not found", 404, catalog.ErrItemNotFound)
	}
	if !item.RequiresForm {
		return Submission{}, common.NewAppError("VALIDATION", "this service is priced directly, add it to the cart instead", 422, ErrNotOfferedViaForm)
	}
	sub.ID = uuid.NewString()
	sub.CreatedAt = s.now()
	data, err := json.Marshal(sub)
	if err != nil {
		return Submission{}, fmt.Errorf("marshal submission: %w", err)
	}
	pipe := s.R.TxPipeline()
	pipe.Set(ctx, submissionKey(sub.ID), data, s.TTL)
	pipe.RPush(ctx, indexKey, sub.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

// Get loads one submission by id.
func (s *Service) Get(ctx context.Context, id string) (Submission, error) {
	if s == nil || s.R == nil {
		return Submission{}, errors.New("requirements service not configured")
	}
	data, err := s.R.Get(ctx, submissionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Submission{}, common.NewAppError("NOT_FOUND", "submission not found", 404, err)
		}
		return Submission{}, err
	}
	var sub Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return Submission{}, fmt.Errorf("unmarshal submission: %w", err)
	}
	return sub, nil
}
