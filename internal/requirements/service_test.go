package requirements_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/tmm-digital/quote-api/internal/catalog"
	"github.com/tmm-digital/quote-api/internal/requirements"
)

func newTestService(t *testing.T) *requirements.Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &requirements.Service{
		R:       client,
		Catalog: catalog.DefaultRegistry(),
		TTL:     24 * time.Hour,
		Now:     func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestRecordAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sub, err := svc.Record(ctx, requirements.Submission{
		ItemID:      "webapp-complex",
		Name:        "Asha",
		Email:       "asha@example.com",
		Description: "Inventory dashboard with role-based access",
	})
	require.NoError(t, err)
	require.NotEmpty(t, sub.ID)

	got, err := svc.Get(ctx, sub.ID)
	require.NoError(t, err)
	require.Equal(t, sub, got)
}

func TestRecordRejectsPricedItems(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, requirements.Submission{ItemID: "logo-design", Name: "A", Email: "a@b.c", Description: "x"})
	require.ErrorIs(t, err, requirements.ErrNotOfferedViaForm)

	_, err = svc.Record(ctx, requirements.Submission{ItemID: "missing", Name: "A", Email: "a@b.c", Description: "x"})
	require.ErrorIs(t, err, catalog.ErrItemNotFound)
}
