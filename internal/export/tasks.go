package export

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeQuoteExport is the asynq task type for rendering a quote artifact.
const TypeQuoteExport = "quote:export"

// Payload describes one export job.
type Payload struct {
	QuoteID string `json:"quoteId"`
	UserID  string `json:"userId"`
	Format  string `json:"format"`
}

// NewQuoteExportTask builds the asynq task for a quote export.
func NewQuoteExportTask(p Payload) (*asynq.Task, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode export payload: %w", err)
	}
	return asynq.NewTask(TypeQuoteExport, body, asynq.MaxRetry(3)), nil
}
