package catalog

import "github.com/tmm-digital/quote-api/internal/pricing"

// Item is one orderable service. Items with a Family are configured through
// the family selector rather than added by quantity; RequiresForm items have
// no price and collect a requirements submission instead.
type Item struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Price        pricing.Money  `json:"price"`
	Description  string         `json:"description,omitempty"`
	SampleURL    string         `json:"sampleUrl,omitempty"`
	Family       pricing.Family `json:"family,omitempty"`
	RequiresForm bool           `json:"requiresForm,omitempty"`
	// Advanced items are only orderable on tiers with advanced features.
	Advanced bool `json:"advanced,omitempty"`
}

// Category groups items for presentation.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Registry is the static service catalog.
type Registry struct {
	categories []Category
	byID       map[string]Item
}

// NewRegistry indexes the given categories by item id.
func NewRegistry(categories []Category) *Registry {
	byID := make(map[string]Item)
	for _, c := range categories {
		for _, item := range c.Items {
			byID[item.ID] = item
		}
	}
	return &Registry{categories: categories, byID: byID}
}

// Categories returns the catalog in presentation order.
func (r *Registry) Categories() []Category {
	return r.categories
}

// Item finds an item by id.
func (r *Registry) Item(id string) (Item, bool) {
	item, ok := r.byID[id]
	return item, ok
}

// DefaultRegistry returns the published service catalog.
func DefaultRegistry() *Registry {
	return NewRegistry([]Category{
		{
			ID:   "combo-packages",
			Name: "Combo Packages (Recommended)",
			Items: []Item{
				{ID: "combo-package", Name: "Combo Packages", Family: pricing.FamilyCombo, Description: "Bundled packages with add-ons"},
			},
		},
		{
			ID:   "seo",
			Name: "SEO Services",
			Items: []Item{
				{ID: "seo-basic", Name: "Basic SEO Package", Price: 19999, Description: "Complete basic SEO package with essential features"},
				{ID: "seo-standard", Name: "Standard SEO Package", Price: 29999, Description: "Complete standard SEO package with advanced features"},
				{ID: "seo-premium", Name: "Premium SEO Package", Price: 39999, Description: "Complete premium SEO package with all features"},
				{ID: "seo-custom", Name: "Custom SEO Package", Family: pricing.FamilySEO, Description: "Build your own SEO package with individual features", Advanced: true},
			},
		},
		{
			ID:   "website",
			Name: "Website Development",
			Items: []Item{
				{ID: "website-basic", Name: "Basic Website", Price: 24999, Description: "5-page responsive website with modern design", SampleURL: "https://getstarted.themadrasmarketeer.com/website/"},
				{ID: "website-standard", Name: "Standard Website", Price: 44999, Description: "10-page website with CMS and advanced features", SampleURL: "https://getstarted.themadrasmarketeer.com/standard-websites/"},
				{ID: "website-premium", Name: "Premium Website", Price: 74999, Description: "Full-featured website with e-commerce capabilities", SampleURL: "https://getstarted.themadrasmarketeer.com/premium/"},
				{ID: "website-vip", Name: "VIP Website", Price: 99999, Description: "Enterprise-level custom web application", SampleURL: "https://getstarted.themadrasmarketeer.com/super-premium/", Advanced: true},
			},
		},
		{
			ID:   "web-applications",
			Name: "Web/Mobile Applications",
			Items: []Item{
				{ID: "webapp-simple", Name: "Simple Web Application", Description: "Basic web applications with standard features", RequiresForm: true},
				{ID: "webapp-complex", Name: "Complex Web Application", Description: "Advanced web applications with custom features", RequiresForm: true},
				{ID: "mobile-app", Name: "Mobile Application", Description: "Native or hybrid mobile applications", RequiresForm: true},
			},
		},
		{
			ID:   "whatsapp",
			Name: "WhatsApp Suite",
			Items: []Item{
				{ID: "whatsapp-suite", Name: "WhatsApp Suite", Family: pricing.FamilyWhatsApp, Description: "Yearly, metered, or custom messaging plans", Advanced: true},
			},
		},
		{
			ID:   "creative",
			Name: "Creative Posters",
			Items: []Item{
				{ID: "poster-creative", Name: "Creative Posters", Family: pricing.FamilyPoster, Description: "High-quality creative poster design", SampleURL: "https://getstarted.themadrasmarketeer.com/creative-posters-videos/"},
				{ID: "poster-normal", Name: "Normal Posters", Family: pricing.FamilyPoster, Description: "Standard poster design"},
				{ID: "logo-design", Name: "Logo Design", Price: 7000, Description: "Professional logo design with multiple concepts", SampleURL: "https://getstarted.themadrasmarketeer.com/logo-design-samples/"},
			},
		},
		{
			ID:   "presentation",
			Name: "Presentation Services",
			Items: []Item{
				{ID: "ppt-business", Name: "Business Presentation", Family: pricing.FamilyPresentation, Description: "Professional business presentation (₹500/slide)"},
				{ID: "ppt-advanced", Name: "Advanced Business Presentation", Family: pricing.FamilyPresentation, Description: "Premium business presentation (₹1000/slide for first 20)"},
			},
		},
		{
			ID:   "portfolio",
			Name: "Portfolio Development",
			Items: []Item{
				{ID: "portfolio-personal", Name: "Personal Portfolio", Price: 15000, Description: "Professional portfolio website"},
				{ID: "portfolio-creative", Name: "Creative Portfolio", Price: 18000, Description: "Artist/designer portfolio"},
				{ID: "portfolio-business", Name: "Business Portfolio", Price: 22000, Description: "Company showcase website"},
				{ID: "portfolio-maintenance", Name: "Portfolio Maintenance", Price: 2000, Description: "Monthly updates and maintenance"},
			},
		},
		{
			ID:   "video",
			Name: "Video Generation",
			Items: []Item{
				{ID: "video-promo", Name: "Promotional Video", Family: pricing.FamilyVideo, Description: "2-3 minute promotional video"},
				{ID: "video-explainer", Name: "Explanatory Video", Family: pricing.FamilyVideo, Description: "3-4 minute video with audio & subtitles"},
				{ID: "video-social", Name: "Social Media Reels", Family: pricing.FamilyVideo, Description: "Short social media video content"},
			},
		},
		{
			ID:   "social-media",
			Name: "Social Media Management",
			Items: []Item{
				{ID: "social-standard", Name: "Standard Package", Family: pricing.FamilySocialMedia, Description: "12 posts, 10 stories, 4 reels with full management"},
				{ID: "social-premium", Name: "Premium Package", Family: pricing.FamilySocialMedia, Description: "20 posts, 20 stories, 8 reels with full management"},
				{ID: "social-custom", Name: "Custom Package", Family: pricing.FamilySocialMedia, Description: "Build your own social media package", Advanced: true},
			},
		},
		{
			ID:   "production-shoot",
			Name: "Production Shoot",
			Items: []Item{
				{ID: "production-shoot", Name: "Production Shoot", Family: pricing.FamilyShoot, Description: "Photo and video production packages"},
			},
		},
		{
			ID:   "lead-generation",
			Name: "Lead Generation",
			Items: []Item{
				{ID: "lead-generation", Name: "Lead Generation Campaigns", Family: pricing.FamilyLeadGen, Description: "Platform campaigns, bundles, and add-ons"},
			},
		},
	})
}
