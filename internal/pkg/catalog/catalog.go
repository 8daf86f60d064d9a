package catalog

import (
	"context"
	"log"
	"strings"
)

// Source tags which tier of the fallback chain served a product, so callers
// and tests can tell fresh content from degraded content.
type Source string

const (
	SourceCMS     Source = "cms"
	SourceStatic  Source = "static"
	SourceDefault Source = "default"
)

// cmsFetcher is the slice of CMSClient the catalog needs; tests substitute it.
type cmsFetcher interface {
	GetProduct(ctx context.Context, slug string) (*Product, error)
}

// Service resolves products with an availability-over-consistency policy:
// remote content first, the static registry second, one hardcoded default
// last. Lookup never surfaces an error — a stale or default product beats a
// broken checkout page.
type Service struct {
	cms cmsFetcher
}

func NewService(cms cmsFetcher) *Service {
	return &Service{cms: cms}
}

func NewServiceFromEnv() *Service {
	return NewService(NewCMSClientFromEnv())
}

// Lookup resolves a product by slug and reports which tier served it.
func (s *Service) Lookup(ctx context.Context, slug string) (*Product, Source) {
	slug = strings.TrimSpace(slug)

	if s.cms != nil && slug != "" {
		product, err := s.cms.GetProduct(ctx, slug)
		if err == nil {
			log.Printf("[catalog] served %q from cms", slug)
			return product, SourceCMS
		}
		log.Printf("[catalog] cms lookup failed for %q, falling back to static: %v", slug, err)
	}

	if p, ok := StaticProduct(slug); ok {
		log.Printf("[catalog] served %q from static registry", slug)
		return &p, SourceStatic
	}

	log.Printf("[catalog] slug %q unknown everywhere, serving default product", slug)
	p := DefaultProduct()
	return &p, SourceDefault
}
