package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"scatch_back_end/internal/database"
	"scatch_back_end/internal/models"
)

const (
	ProductsCacheKey = "products:all"
	ProductsCacheTTL = 5 * time.Minute
)

// GetProducts tente le cache Redis du catalogue. Tout échec (Redis absent,
// clé manquante, JSON corrompu) vaut simplement cache miss.
func GetProducts(ctx context.Context) ([]models.Product, bool) {
	if database.Redis == nil {
		return nil, false
	}

	val, err := database.Redis.Get(ctx, ProductsCacheKey).Result()
	if err != nil || val == "" {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProducts met le catalogue en cache, en best-effort.
func SetProducts(ctx context.Context, products []models.Product) {
	if database.Redis == nil {
		return
	}

	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := database.Redis.Set(ctx, ProductsCacheKey, data, ProductsCacheTTL).Err(); err != nil {
		log.Printf("⚠️ Erreur écriture cache catalogue: %v", err)
	}
}

// InvalidateProducts purge le cache après une écriture catalogue.
func InvalidateProducts(ctx context.Context) {
	if database.Redis == nil {
		return
	}
	if err := database.Redis.Del(ctx, ProductsCacheKey).Err(); err != nil {
		log.Printf("⚠️ Erreur invalidation cache catalogue: %v", err)
	}
}
