package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tmm-digital/quote-api/internal/pricing"
)

// ErrNotFound indicates the requested cart could not be located.
var ErrNotFound = errors.New("cart not found")

// Store persists cart documents as JSON in Redis. Every save refreshes the
// TTL so active carts never expire mid-session.
type Store struct {
	R   *redis.Client
	TTL time.Duration
}

func cartKey(id string) string {
	return "cart:" + id
}

// Save writes the cart document and refreshes its TTL.
func (s *Store) Save(ctx context.Context, c *Cart) error {
	if s == nil || s.R == nil {
		return errors.New("cart store not configured")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return s.R.Set(ctx, cartKey(c.ID), data, s.TTL).Err()
}

// Load reads a cart document by id.
func (s *Store) Load(ctx context.Context, id string) (*Cart, error) {
	if s == nil || s.R == nil {
		return nil, errors.New("cart store not configured")
	}
	data, err := s.R.Get(ctx, cartKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	if c.Selections == nil {
		c.Selections = make(map[pricing.Family]pricing.FamilySelection)
	}
	return &c, nil
}

// Delete removes a cart document.
func (s *Store) Delete(ctx context.Context, id string) error {
	if s == nil || s.R == nil {
		return errors.New("cart store not configured")
	}
	return s.R.Del(ctx, cartKey(id)).Err()
}
