package catalog

// Theme carries a funnel's presentational settings. The server never
// interprets these beyond passing them to the page templates.
type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	AccentColor     string `json:"accentColor"`
	BackgroundColor string `json:"backgroundColor"`
	LogoURL         string `json:"logoUrl"`
	LogoWidth       string `json:"logoWidth"`
}

// Checkout is the main offer block on a checkout page. Price is denominated
// in integer minor currency units (cents).
type Checkout struct {
	Headline      string   `json:"headline"`
	Subhead       string   `json:"subhead"`
	ProductName   string   `json:"productName"`
	Price         int64    `json:"price"`
	Image         string   `json:"image"`
	VideoEmbedURL string   `json:"videoEmbedUrl,omitempty"`
	Features      []string `json:"features"`
	StripePriceID string   `json:"stripePriceId"`
	FunnelType    string   `json:"funnelType"`
	CTAText       string   `json:"ctaText,omitempty"`
}

// Bump is the optional same-page add-on offer.
type Bump struct {
	Headline      string `json:"headline"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	StripePriceID string `json:"stripePriceId"`
}

// OTO is the one-time upsell offer shown after a successful purchase.
type OTO struct {
	Headline         string   `json:"headline"`
	VideoEmbedURL    string   `json:"videoEmbedUrl,omitempty"`
	VideoPlaceholder string   `json:"videoPlaceholder"`
	Price            int64    `json:"price"`
	RetailPrice      int64    `json:"retailPrice"`
	Features         []string `json:"features"`
	StripePriceID    string   `json:"stripePriceId"`
}

// Downsell is the cheaper fallback offer shown when the upsell is declined.
type Downsell struct {
	Headline      string `json:"headline"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	StripePriceID string `json:"stripePriceId"`
	DeliveryURL   string `json:"deliveryUrl"`
}

// Product is one sellable funnel's content and pricing.
type Product struct {
	ID       string    `json:"id"`
	Theme    Theme     `json:"theme"`
	Checkout Checkout  `json:"checkout"`
	Bump     *Bump     `json:"bump,omitempty"`
	OTO      OTO       `json:"oto"`
	Downsell *Downsell `json:"downsell,omitempty"`
}

// BumpPrice returns the bump price, or 0 when the product has no bump.
func (p *Product) BumpPrice() int64 {
	if p.Bump == nil {
		return 0
	}
	return p.Bump.Price
}
