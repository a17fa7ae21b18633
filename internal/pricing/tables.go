package pricing

// Tables bundles every family's rate table. The engine takes the whole set
// at construction so tests can swap individual tables.
type Tables struct {
	Poster       PosterRates
	Presentation PresentationRates
	Video        VideoRates
	SocialMedia  SocialMediaRates
	Shoot        ShootRates
	LeadGen      LeadGenRates
	WhatsApp     WhatsAppRates
	SEO          SEORates
	Combo        ComboRates
}

// DefaultTables returns the published rate card. All amounts are whole
// rupees.
func DefaultTables() Tables {
	return Tables{
		Poster: PosterRates{
			CreativeSingle: 650,
			CreativeBulk10: 550,
			CreativeBulk20: 500,
			Normal:         400,
		},
		Presentation: PresentationRates{
			Business: PresentationRate{Threshold: 50, BaseRate: 500, OverflowRate: 250},
			Advanced: PresentationRate{Threshold: 20, BaseRate: 1000, OverflowRate: 500},
		},
		Video: VideoRates{
			Promo:       5000,
			Explainer:   8000,
			Social:      1500,
			BundleQty:   5,
			BundlePrice: 6000,
		},
		SocialMedia: SocialMediaRates{
			StandardPackage: 30000,
			PremiumPackage:  50000,
			CustomPost:      600,
			CustomReel:      2500,
			CustomCarousel:  800,
			CustomMotion:    800,
		},
		Shoot: ShootRates{
			Packages: map[ShootType]map[PackageTier]ShootPackage{
				ShootPhoto: {
					PackageBasic:    {Price: 15000, Label: "Photoshoot - Basic"},
					PackageStandard: {Price: 25000, Label: "Photoshoot - Standard"},
					PackagePremium:  {Price: 40000, Label: "Photoshoot - Premium"},
				},
				ShootVideo: {
					PackageBasic:    {Price: 25000, Label: "Video Shoot - Basic"},
					PackageStandard: {Price: 45000, Label: "Video Shoot - Standard"},
					PackagePremium:  {Price: 75000, Label: "Video Shoot - Premium"},
				},
				ShootProduct: {
					PackageBasic:    {Price: 12000, Label: "Product Shoot - Basic"},
					PackageStandard: {Price: 20000, Label: "Product Shoot - Standard"},
					PackagePremium:  {Price: 35000, Label: "Product Shoot - Premium"},
				},
				ShootPromo: {
					PackageBasic:    {Price: 20000, Label: "Promo Shoot - Basic"},
					PackageStandard: {Price: 35000, Label: "Promo Shoot - Standard"},
					PackagePremium:  {Price: 55000, Label: "Promo Shoot - Premium"},
				},
				ShootInterior: {
					PackageBasic:    {Price: 18000, Label: "Interior/Exterior Shoot - Basic"},
					PackageStandard: {Price: 30000, Label: "Interior/Exterior Shoot - Standard"},
					PackagePremium:  {Price: 50000, Label: "Interior/Exterior Shoot - Premium"},
				},
				ShootPitchDeck: {
					PackageBasic:    {Price: 30000, Label: "Pitch Deck Shoot - Basic"},
					PackageStandard: {Price: 50000, Label: "Pitch Deck Shoot - Standard"},
					PackagePremium:  {Price: 80000, Label: "Pitch Deck Shoot - Premium"},
				},
				ShootSocialReel: {
					PackageBasic:    {Price: 8000, Label: "Social Reels - Basic"},
					PackageStandard: {Price: 15000, Label: "Social Reels - Standard"},
					PackagePremium:  {Price: 25000, Label: "Social Reels - Premium"},
				},
			},
		},
		LeadGen: LeadGenRates{
			Platforms: map[string]LeadGenOffer{
				"meta":     {Name: "Meta (FB/Instagram)", Fee: 3999},
				"google":   {Name: "Google Ads", Fee: 6999},
				"linkedin": {Name: "LinkedIn", Fee: 8999},
				"youtube":  {Name: "YouTube Ads", Fee: 5999},
				"whatsapp": {Name: "WhatsApp Lead Ads", Fee: 4999},
			},
			Bundles: map[string]LeadGenOffer{
				"starter-leads":  {Name: "Starter Leads", Fee: 3999},
				"growth-funnel":  {Name: "Growth Funnel", Fee: 6999},
				"pro-b2b-boost":  {Name: "Pro B2B Boost", Fee: 8999},
				"insta-yt-combo": {Name: "Insta+YT Combo", Fee: 7999},
				"wa-blaster":     {Name: "WA Blaster", Fee: 4999},
			},
			AddOns: map[string]Money{
				"lead-form":           999,
				"whatsapp-auto-reply": 999,
				"google-sheet-sync":   999,
				"retargeting-pixel":   799,
				"crm-push":            1499,
				"custom-funnel":       1999,
			},
		},
		WhatsApp: WhatsAppRates{
			YearlyPlans: map[string]WhatsAppPlan{
				"starter":  {Name: "Yearly Starter Plan", Messages: 20000, Price: 4999},
				"standard": {Name: "Yearly Standard Plan", Messages: 40000, Price: 9999},
				"premium":  {Name: "Yearly Premium Plan", Messages: 80000, Price: 14999},
			},
			MeteredPlans: map[string]WhatsAppPlan{
				"lite":       {Name: "Lite", Messages: 5000, Price: 1499},
				"smart":      {Name: "Smart", Messages: 10000, Price: 2799},
				"pro":        {Name: "Pro", Messages: 25000, Price: 6499},
				"business":   {Name: "Business", Messages: 50000, Price: 11999},
				"enterprise": {Name: "Enterprise", Messages: 100000, Price: 21999},
			},
			BaseVolumePrices: map[int]Money{
				5000:   1499,
				10000:  2799,
				25000:  6499,
				50000:  11999,
				100000: 21999,
			},
			ImageTextVolumes:    map[int]bool{5000: true, 10000: true},
			DocumentTextVolumes: map[int]bool{5000: true, 10000: true, 25000: true},
			ImageText:           499,
			DocumentText:        699,
			LeadForm:            999,
			SheetIntegration:    999,
			AutoReply:           999,
			Template:            499,
			StrategySession:     999,
			PrebuiltFunnel:      1499,
			SupportWhatsApp:     399,
			SupportPriority:     799,
		},
		SEO: SEORates{
			Features: map[string]SEOFeature{
				"pages-optimize": {Name: "Pages to Optimize", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 2500, Description: "5 pages"},
					PackageStandard: {Price: 5000, Description: "10 pages"},
					PackagePremium:  {Price: 7500, Description: "15 pages"},
				}},
				"image-optimization": {Name: "Image Optimization", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 300, Description: "10 images"},
					PackageStandard: {Price: 600, Description: "25 images"},
					PackagePremium:  {Price: 1000, Description: "50 images"},
				}},
				"onpage-seo": {Name: "On-Page SEO (Setup)", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 2500, Description: "Basic setup"},
					PackageStandard: {Price: 4000, Description: "Standard setup"},
					PackagePremium:  {Price: 6000, Description: "Premium setup"},
				}},
				"blog-optimization": {Name: "Blog Optimization", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 500, Description: "1 blog"},
					PackageStandard: {Price: 1000, Description: "2 blogs"},
					PackagePremium:  {Price: 2000, Description: "4 blogs"},
				}},
				"blog-writing-seo": {Name: "Blog Writing + SEO", Options: map[PackageTier]SEOOption{
					PackageStandard: {Price: 1500, Description: "1 blog"},
					PackagePremium:  {Price: 3000, Description: "2 blogs"},
				}},
				"keyword-research": {Name: "Keyword Research", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 500, Description: "5 keywords"},
					PackageStandard: {Price: 800, Description: "10 keywords"},
					PackagePremium:  {Price: 1500, Description: "20 keywords"},
				}},
				"competitor-analysis": {Name: "Competitor Analysis", Options: map[PackageTier]SEOOption{
					PackageStandard: {Price: 500, Description: "1 competitor"},
					PackagePremium:  {Price: 1000, Description: "3 competitors"},
				}},
				"google-business-optimization": {Name: "Google Business Optimization", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 1000, Description: "Setup only"},
					PackageStandard: {Price: 1500, Description: "Monthly boost"},
					PackagePremium:  {Price: 2500, Description: "Boost + reviews"},
				}},
				"backlink-building-basic": {Name: "Backlink Building (Basic)", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 1000, Description: "10 links"},
					PackageStandard: {Price: 2000, Description: "20 links"},
					PackagePremium:  {Price: 3000, Description: "40 links"},
				}},
				"backlink-building-advanced": {Name: "Backlink Building (Advanced)", Options: map[PackageTier]SEOOption{
					PackagePremium: {Price: 2500, Description: "10 high-DA"},
				}},
				"forum-posting": {Name: "Forum Posting", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 500, Description: "5 posts"},
					PackageStandard: {Price: 800, Description: "10 posts"},
					PackagePremium:  {Price: 1200, Description: "20 posts"},
				}},
				"social-bookmarking": {Name: "Social Bookmarking", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 500, Description: "10 bookmarks"},
					PackageStandard: {Price: 900, Description: "20 bookmarks"},
					PackagePremium:  {Price: 1200, Description: "30 bookmarks"},
				}},
				"technical-seo-audit": {Name: "Technical SEO Audit", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 1000, Description: "Basic audit"},
					PackageStandard: {Price: 1500, Description: "Full report"},
					PackagePremium:  {Price: 2500, Description: "With fixes"},
				}},
				"schema-markup": {Name: "Schema Markup", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 800, Description: "1 type"},
					PackageStandard: {Price: 1200, Description: "2 types"},
					PackagePremium:  {Price: 2200, Description: "5 types"},
				}},
				"robots-sitemap": {Name: "Robots.txt & Sitemap", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 500, Description: "Basic"},
					PackageStandard: {Price: 800, Description: "Advanced"},
					PackagePremium:  {Price: 1200, Description: "Dynamic"},
				}},
				"search-console-setup": {Name: "Search Console Setup", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 800, Description: "Setup"},
					PackageStandard: {Price: 1000, Description: "+Insights"},
					PackagePremium:  {Price: 1500, Description: "Monitoring"},
				}},
				"speed-optimization": {Name: "Speed Optimization", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 500, Description: "Report only"},
					PackageStandard: {Price: 800, Description: "W/ suggestions"},
					PackagePremium:  {Price: 1500, Description: "With fix"},
				}},
				"seo-reporting": {Name: "SEO Reporting", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 1000, Description: "Monthly"},
					PackageStandard: {Price: 1200, Description: "Monthly + GSC"},
					PackagePremium:  {Price: 2500, Description: "Weekly + dash"},
				}},
				"local-citations": {Name: "Local Citations", Options: map[PackageTier]SEOOption{
					PackageBasic:    {Price: 700, Description: "5 listings"},
					PackageStandard: {Price: 1200, Description: "10 listings"},
					PackagePremium:  {Price: 2000, Description: "20 listings"},
				}},
				"content-strategy-plan": {Name: "Content Strategy Plan", Options: map[PackageTier]SEOOption{
					PackageStandard: {Price: 1500, Description: "Monthly"},
					PackagePremium:  {Price: 3000, Description: "Quarterly"},
				}},
				"review-management": {Name: "Review Management (GMB)", Options: map[PackageTier]SEOOption{
					PackageStandard: {Price: 1200, Description: "Monthly"},
					PackagePremium:  {Price: 2000, Description: "Weekly"},
				}},
			},
		},
		Combo: ComboRates{
			Packages: map[string]ComboPackage{
				"starter-success":    {Name: "Starter Success Combo", Price: 34999},
				"digital-essentials": {Name: "Digital Essentials Combo", Price: 49999},
				"ecommerce-starter":  {Name: "E-Commerce Starter Combo", Price: 64999},
				"growth-pro":         {Name: "Growth Pro Combo", Price: 89999},
			},
			AddOns: map[string]Money{
				"whatsapp-bulk-setup": 1500,
				"gmb-setup":           1000,
				"amc-monthly":         5000,
				"amc-yearly":          25000,
				"analytics-setup":     1000,
				"pwa-setup":           500,
			},
		},
	}
}
