package export

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/tmm-digital/quote-api/internal/cart"
	"github.com/tmm-digital/quote-api/internal/pricing"
	"github.com/tmm-digital/quote-api/internal/promo"
	"github.com/tmm-digital/quote-api/internal/quote"
	"github.com/tmm-digital/quote-api/internal/repo"
)

type fakeQuotes struct {
	rows map[string]repo.Quote
}

func (f *fakeQuotes) GetByID(_ context.Context, id string) (repo.Quote, error) {
	q, ok := f.rows[id]
	if !ok {
		return repo.Quote{}, repo.ErrNoRows
	}
	return q, nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "job-1", Type: task.Type()}, nil
}

type fakeAccounts struct {
	err      error
	consumed int
}

func (f *fakeAccounts) ConsumeExport(context.Context, string) error {
	if f.err != nil {
		return f.err
	}
	f.consumed++
	return nil
}

func sampleSnapshot(t *testing.T) (quote.Snapshot, []byte) {
	t.Helper()
	snap := quote.Snapshot{
		ID:          "TMM-1748779200000-abc123def",
		QuoteNumber: "TMM-202506-00001",
		UserID:      "user-1",
		Items: []cart.LineItem{
			{ItemID: "logo-design", Name: "Logo Design", UnitPrice: 7000, Qty: 1},
		},
		Lines: []pricing.Line{
			{Family: pricing.FamilyPoster, Label: "Poster Design", UnitPrice: 650, Quantity: 2, Total: 1300},
		},
		Discount:  &promo.Applied{Code: "TMM10", Amount: 830},
		Summary:   pricing.Summary{Subtotal: 8300, Discount: 830, Taxable: 7470, Tax: 1344, Total: 8814},
		Currency:  "INR",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	doc, err := json.Marshal(snap)
	require.NoError(t, err)
	return snap, doc
}

func newService(t *testing.T) (*Service, *Worker, *fakeQuotes, *fakeEnqueuer, *fakeAccounts) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	quotes := &fakeQuotes{rows: make(map[string]repo.Quote)}
	enq := &fakeEnqueuer{}
	accounts := &fakeAccounts{}
	svc := &Service{Quotes: quotes, Accounts: accounts, Tasks: enq, R: client, TTL: time.Hour}
	worker := &Worker{Quotes: quotes, R: client, TTL: time.Hour}
	return svc, worker, quotes, enq, accounts
}

func storeSample(t *testing.T, quotes *fakeQuotes) quote.Snapshot {
	t.Helper()
	snap, doc := sampleSnapshot(t)
	quotes.rows[snap.ID] = repo.Quote{
		ID: snap.ID, UserID: snap.UserID, QuoteNumber: snap.QuoteNumber,
		Snapshot: doc, Total: snap.Summary.Total, Status: "draft", CreatedAt: snap.CreatedAt,
	}
	return snap
}

func TestRequestConsumesAllowanceAndEnqueues(t *testing.T) {
	svc, _, quotes, enq, accounts := newService(t)
	snap := storeSample(t, quotes)

	require.NoError(t, svc.Request(context.Background(), "user-1", snap.ID, ""))
	require.Equal(t, 1, accounts.consumed)
	require.Len(t, enq.tasks, 1)
	require.Equal(t, TypeQuoteExport, enq.tasks[0].Type())

	var p Payload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
	require.Equal(t, snap.ID, p.QuoteID)
	require.Equal(t, FormatText, p.Format)
}

func TestRequestBlockedByTierLimit(t *testing.T) {
	svc, _, quotes, enq, accounts := newService(t)
	snap := storeSample(t, quotes)
	accounts.err = context.DeadlineExceeded // any refusal will do

	require.Error(t, svc.Request(context.Background(), "user-1", snap.ID, ""))
	require.Empty(t, enq.tasks)
}

func TestRequestRequiresOwnership(t *testing.T) {
	svc, _, quotes, enq, _ := newService(t)
	snap := storeSample(t, quotes)

	err := svc.Request(context.Background(), "someone-else", snap.ID, "")
	require.ErrorIs(t, err, ErrQuoteNotFound)
	require.Empty(t, enq.tasks)
}

func TestRequestRejectsUnknownFormat(t *testing.T) {
	svc, _, quotes, _, _ := newService(t)
	snap := storeSample(t, quotes)

	err := svc.Request(context.Background(), "user-1", snap.ID, "pdf")
	require.ErrorIs(t, err, ErrBadFormat)
}

func TestWorkerRendersTextArtifact(t *testing.T) {
	svc, worker, quotes, _, _ := newService(t)
	snap := storeSample(t, quotes)

	task, err := NewQuoteExportTask(Payload{QuoteID: snap.ID, UserID: "user-1", Format: FormatText})
	require.NoError(t, err)
	require.NoError(t, worker.HandleQuoteExport(context.Background(), task))

	data, contentType, err := svc.Artifact(context.Background(), snap.ID, FormatText)
	require.NoError(t, err)
	require.Equal(t, "text/plain; charset=utf-8", contentType)
	text := string(data)
	require.Contains(t, text, "Quote TMM-202506-00001")
	require.Contains(t, text, "Logo Design")
	require.Contains(t, text, "Discount (TMM10): -₹830")
	require.Contains(t, text, "Total: ₹8,814")
}

func TestWorkerRendersJSONArtifactVerbatim(t *testing.T) {
	svc, worker, quotes, _, _ := newService(t)
	snap := storeSample(t, quotes)

	task, err := NewQuoteExportTask(Payload{QuoteID: snap.ID, UserID: "user-1", Format: FormatJSON})
	require.NoError(t, err)
	require.NoError(t, worker.HandleQuoteExport(context.Background(), task))

	data, contentType, err := svc.Artifact(context.Background(), snap.ID, FormatJSON)
	require.NoError(t, err)
	require.Equal(t, "application/json; charset=utf-8", contentType)
	require.Equal(t, quotes.rows[snap.ID].Snapshot, data)
}

func TestArtifactPendingBeforeWorkerRuns(t *testing.T) {
	svc, _, quotes, _, _ := newService(t)
	snap := storeSample(t, quotes)

	_, _, err := svc.Artifact(context.Background(), snap.ID, FormatText)
	require.ErrorIs(t, err, ErrArtifactAbsent)
}
