package admission

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vendora/vendora-backend/internal/cache"
	"github.com/vendora/vendora-backend/internal/models"
)

// SettingsResolver loads a seller's settings from the durable store,
// creating a defaults record on first access.
type SettingsResolver interface {
	GetOrCreate(ctx context.Context, sellerID string) (*models.StoreSettings, error)
}

// Gateway is the admission surface called at order-placement time. It
// resolves settings cache-first, evaluates the guard chain, and fails
// closed when the durable store is unreachable.
type Gateway struct {
	store SettingsResolver
	cache cache.Client
	ttl   time.Duration
}

// NewGateway constructs an admission gateway. A non-positive ttl falls
// back to the default settings TTL.
func NewGateway(store SettingsResolver, cacheClient cache.Client, ttl time.Duration) *Gateway {
	if ttl <= 0 {
		ttl = cache.DefaultSettingsTTL
	}
	return &Gateway{store: store, cache: cacheClient, ttl: ttl}
}

// Check validates the order context, resolves the seller's settings,
// and evaluates admission. On allow the resolved settings are returned
// so the caller can reuse them without a second fetch. A store failure
// yields a STORE_UNAVAILABLE rejection together with the error.
func (g *Gateway) Check(ctx context.Context, order OrderContext) (Decision, *models.StoreSettings, error) {
	if err := order.Validate(); err != nil {
		return Decision{}, nil, err
	}
	if order.EvaluationTime.IsZero() {
		order.EvaluationTime = time.Now()
	}

	settings, err := g.resolveSettings(ctx, order.SellerID)
	if err != nil {
		log.WithError(err).WithField("seller_id", order.SellerID).Error("settings store unreachable, failing closed")
		return reject(ReasonStoreUnavailable, "the store is temporarily unavailable", nil), nil, err
	}

	decision, errEvaluate := Evaluate(settings, order)
	if errEvaluate != nil {
		return Decision{}, nil, errEvaluate
	}
	return decision, settings, nil
}

// resolveSettings reads through the cache into the store. Cache
// failures are logged and degrade to a direct store read; a store
// failure propagates to the caller.
func (g *Gateway) resolveSettings(ctx context.Context, sellerID string) (*models.StoreSettings, error) {
	key := cache.SettingsKey(sellerID)

	if cached, ok, errGet := g.cache.Get(ctx, key); errGet != nil {
		log.WithError(errGet).WithField("seller_id", sellerID).Warn("settings cache read failed, falling back to store")
	} else if ok {
		var settings models.StoreSettings
		if errUnmarshal := json.Unmarshal(cached, &settings); errUnmarshal == nil {
			return &settings, nil
		}
		// A corrupt entry is treated as a miss and overwritten below.
		log.WithField("seller_id", sellerID).Warn("discarding undecodable cached settings entry")
	}

	settings, err := g.store.GetOrCreate(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if encoded, errMarshal := json.Marshal(settings); errMarshal == nil {
		if errSet := g.cache.Set(ctx, key, encoded, g.ttl); errSet != nil {
			log.WithError(errSet).WithField("seller_id", sellerID).Warn("settings cache write failed")
		}
	}
	return settings, nil
}
