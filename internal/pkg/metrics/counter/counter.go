package counter

import (
	"context"
	"log"
	"strconv"

	"github.com/funnelforge/funnelforge/app/repository"
	"github.com/funnelforge/funnelforge/internal/pkg/cache"
)

const (
	checkoutViewsKey = "funnel:counters:checkout_views"
	purchasesKey     = "funnel:counters:purchases"
)

// AddCheckoutView increments the pending checkout-view counter for a slug in Redis
func AddCheckoutView(slug string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, checkoutViewsKey, slug, 1).Err()
}

// AddPurchase increments the pending purchase counter for a slug in Redis
func AddPurchase(slug string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, purchasesKey, slug, 1).Err()
}

// FlushAll flushes pending counters from Redis into the funnel_stats table
func FlushAll(repo repository.FunnelStatRepository) error {
	if err := flushHash(checkoutViewsKey, repo.IncrementCheckoutViews); err != nil {
		return err
	}
	return flushHash(purchasesKey, repo.IncrementPurchases)
}

func flushHash(key string, apply func(slug string, delta int64) error) error {
	ctx := context.Background()
	client := cache.GetClient()

	pending, err := client.HGetAll(ctx, key).Result()
	if err != nil {
		return err
	}

	for slug, raw := range pending {
		delta, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || delta == 0 {
			continue
		}
		if err := apply(slug, delta); err != nil {
			log.Printf("[counter] flush of %s/%s failed, keeping pending value: %v", key, slug, err)
			continue
		}
		if err := client.HDel(ctx, key, slug).Err(); err != nil {
			log.Printf("[counter] could not clear flushed counter %s/%s: %v", key, slug, err)
		}
	}
	return nil
}
