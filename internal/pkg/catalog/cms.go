package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/funnelforge/funnelforge/internal/pkg/env"
)

const defaultCMSTimeout = 15 * time.Second

// CMSClient talks to the headless content store (a Strapi-compatible REST
// API). Product content is authoritative there; the static registry only
// backs it up.
type CMSClient struct {
	BaseURL  string
	APIToken string

	HTTPClient *http.Client
}

// NewCMSClientFromEnv builds a client from CMS_BASE_URL / CMS_API_TOKEN.
func NewCMSClientFromEnv() *CMSClient {
	return &CMSClient{
		BaseURL:  strings.TrimRight(env.GetEnv("CMS_BASE_URL", ""), "/"),
		APIToken: strings.TrimSpace(env.GetEnv("CMS_API_TOKEN", "")),
		HTTPClient: &http.Client{
			Timeout: defaultCMSTimeout,
		},
	}
}

// cmsFeature tolerates both `"text"` strings and `{ "text": ... }` component
// objects, which the content store emits depending on the collection schema.
type cmsFeature struct {
	Text string
}

func (f *cmsFeature) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Text = s
		return nil
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	f.Text = obj.Text
	return nil
}

type cmsCheckout struct {
	Headline      string       `json:"headline"`
	Subhead       string       `json:"subhead"`
	ProductName   string       `json:"productName"`
	Price         int64        `json:"price"`
	Image         string       `json:"image"`
	VideoEmbedURL string       `json:"videoEmbedUrl"`
	Features      []cmsFeature `json:"features"`
	StripePriceID string       `json:"stripePriceId"`
	FunnelType    string       `json:"funnel_type"`
	CTAText       string       `json:"ctaText"`
}

type cmsOTO struct {
	Headline         string       `json:"headline"`
	VideoEmbedURL    string       `json:"videoEmbedUrl"`
	VideoPlaceholder string       `json:"videoPlaceholder"`
	Price            int64        `json:"price"`
	RetailPrice      int64        `json:"retailPrice"`
	Features         []cmsFeature `json:"features"`
	StripePriceID    string       `json:"stripePriceId"`
}

type cmsProduct struct {
	ID         int         `json:"id"`
	DocumentID string      `json:"documentId"`
	Slug       string      `json:"slug"`
	Name       string      `json:"name"`
	IsActive   bool        `json:"isActive"`
	FunnelType string      `json:"funnel_type"`
	Theme      Theme       `json:"theme"`
	Checkout   cmsCheckout `json:"checkout"`
	Bump       *Bump       `json:"bump"`
	OTO        cmsOTO      `json:"oto"`
	Downsell   *Downsell   `json:"downsell"`
}

// GetProduct fetches one product by slug. A nil error with a nil product is
// never returned; every failure (missing config, timeout, non-2xx, empty
// result) comes back as an error the caller is expected to degrade on.
func (c *CMSClient) GetProduct(ctx context.Context, slug string) (*Product, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return nil, errors.New("CMS_BASE_URL is not configured")
	}
	if strings.TrimSpace(c.APIToken) == "" {
		return nil, errors.New("CMS_API_TOKEN is not configured")
	}
	if strings.TrimSpace(slug) == "" {
		return nil, errors.New("slug is required")
	}

	u, err := url.Parse(c.BaseURL + "/api/products")
	if err != nil {
		return nil, fmt.Errorf("invalid CMS_BASE_URL: %w", err)
	}
	q := u.Query()
	q.Set("filters[slug][$eq]", strings.TrimSpace(slug))
	for _, component := range []string{"theme", "checkout.features", "bump", "oto.features", "downsell"} {
		q.Add("populate", component)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cms product request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var raw struct {
		Data []cmsProduct `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if len(raw.Data) == 0 {
		return nil, fmt.Errorf("cms has no product for slug %q", slug)
	}

	return mapCMSProduct(raw.Data[0]), nil
}

func mapCMSProduct(item cmsProduct) *Product {
	// The funnel type may live on the product root or inside the checkout
	// component, depending on when the entry was authored.
	funnelType := strings.TrimSpace(item.FunnelType)
	if funnelType == "" {
		funnelType = strings.TrimSpace(item.Checkout.FunnelType)
	}
	if funnelType == "" {
		funnelType = "digital_product"
	}

	return &Product{
		ID:    item.Slug,
		Theme: item.Theme,
		Checkout: Checkout{
			Headline:      item.Checkout.Headline,
			Subhead:       item.Checkout.Subhead,
			ProductName:   item.Checkout.ProductName,
			Price:         item.Checkout.Price,
			Image:         item.Checkout.Image,
			VideoEmbedURL: item.Checkout.VideoEmbedURL,
			Features:      featureTexts(item.Checkout.Features),
			StripePriceID: item.Checkout.StripePriceID,
			FunnelType:    funnelType,
			CTAText:       item.Checkout.CTAText,
		},
		Bump: item.Bump,
		OTO: OTO{
			Headline:         item.OTO.Headline,
			VideoEmbedURL:    item.OTO.VideoEmbedURL,
			VideoPlaceholder: item.OTO.VideoPlaceholder,
			Price:            item.OTO.Price,
			RetailPrice:      item.OTO.RetailPrice,
			Features:         featureTexts(item.OTO.Features),
			StripePriceID:    item.OTO.StripePriceID,
		},
		Downsell: item.Downsell,
	}
}

func featureTexts(features []cmsFeature) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		if f.Text != "" {
			out = append(out, f.Text)
		}
	}
	return out
}

// OrderRecord is the payload shape for the content store's orders collection.
type OrderRecord struct {
	PaymentIntentID string            `json:"stripePaymentIntentId"`
	CustomerEmail   string            `json:"customerEmail"`
	CustomerName    string            `json:"customerName"`
	AmountTotal     int64             `json:"amountTotal"`
	Products        map[string]string `json:"productsPurchased"`
	PaymentStatus   string            `json:"paymentStatus"`
}

// CreateOrder persists an order record to the content store. Callers treat
// failures as best-effort; the webhook never fails on a CMS outage.
func (c *CMSClient) CreateOrder(ctx context.Context, record OrderRecord) error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("CMS_BASE_URL is not configured")
	}

	payload, err := json.Marshal(map[string]interface{}{"data": record})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/orders", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("cms order create failed: status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}
