package catalog

import (
	"context"
	"errors"

	"github.com/tmm-digital/quote-api/internal/common"
	"github.com/tmm-digital/quote-api/internal/pricing"
)

// ErrItemNotFound is returned when an item id is missing from the registry.
var ErrItemNotFound = errors.New("catalog item not found")

const categoriesCacheKey = "catalog:categories:v1"

// Service serves the catalog, fronting the static registry with a Redis
// cache so the payload assembly cost is paid once per TTL.
type Service struct {
	Registry *Registry
	Cache    *Cache
	Tables   pricing.Tables
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Registry *Registry
	Cache    *Cache
	Tables   pricing.Tables
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Registry == nil {
		return nil, errors.New("catalog: registry is required")
	}
	return &Service{Registry: cfg.Registry, Cache: cfg.Cache, Tables: cfg.Tables}, nil
}

// Categories returns the full catalog.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	if s == nil || s.Registry == nil {
		return nil, errors.New("catalog service not configured")
	}
	var cached []Category
	if hit, err := s.Cache.GetJSON(ctx, categoriesCacheKey, &cached); err == nil && hit {
		return cached, nil
	}
	categories := s.Registry.Categories()
	if err := s.Cache.SetJSON(ctx, categoriesCacheKey, categories); err != nil {
		return categories, nil
	}
	return categories, nil
}

// ItemDetail returns one item together with its rate table when the item is
// configured through a family selector.
type ItemDetail struct {
	Item  Item `json:"item"`
	Rates any  `json:"rates,omitempty"`
}

// Item finds an item and attaches the rate table for configurable families.
func (s *Service) Item(ctx context.Context, id string) (ItemDetail, error) {
	if s == nil || s.Registry == nil {
		return ItemDetail{}, errors.New("catalog service not configured")
	}
	item, ok := s.Registry.Item(id)
	if !ok {
		return ItemDetail{}, common.NewAppError("NOT_FOUND", "catalog item not found", 404, ErrItemNotFound)
	}
	detail := ItemDetail{Item: item}
	switch item.Family {
	case pricing.FamilyPoster:
		detail.Rates = s.Tables.Poster
	case pricing.FamilyPresentation:
		detail.Rates = s.Tables.Presentation
	case pricing.FamilyVideo:
		detail.Rates = s.Tables.Video
	case pricing.FamilySocialMedia:
		detail.Rates = s.Tables.SocialMedia
	case pricing.FamilyShoot:
		detail.Rates = s.Tables.Shoot
	case pricing.FamilyLeadGen:
		detail.Rates = s.Tables.LeadGen
	case pricing.FamilyWhatsApp:
		detail.Rates = s.Tables.WhatsApp
	case pricing.FamilyCombo:
		detail.Rates = s.Tables.Combo
	case pricing.FamilySEO:
		detail.Rates = s.Tables.SEO
	}
	return detail, nil
}
