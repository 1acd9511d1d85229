package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aibudget/tracker-api/internal/api/metrics"
	"github.com/aibudget/tracker-api/internal/core/domain"
)

const forecastTTL = 10 * time.Minute

// ForecastCache memoises computed forecasts per user and window.
// Key format: forecast:<username>:<months>
//
// Redis failures are deliberately swallowed: a broken cache must never break
// a prediction, so Get reports a miss and Set is best-effort.
type ForecastCache struct {
	client *redis.Client
}

// NewForecastCache creates a ForecastCache wrapping the given Redis client.
func NewForecastCache(client *redis.Client) *ForecastCache {
	return &ForecastCache{client: client}
}

// Get returns the cached forecast, or false on a miss or any cache error.
func (f *ForecastCache) Get(ctx context.Context, username string, months int) (*domain.Forecast, bool) {
	raw, err := f.client.Get(ctx, f.key(username, months)).Bytes()
	if err != nil {
		metrics.ForecastCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var forecast domain.Forecast
	if err := json.Unmarshal(raw, &forecast); err != nil {
		metrics.ForecastCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.ForecastCacheTotal.WithLabelValues("hit").Inc()
	return &forecast, true
}

// Set stores the forecast (expires after forecastTTL).
func (f *ForecastCache) Set(ctx context.Context, username string, months int, forecast *domain.Forecast) {
	raw, err := json.Marshal(forecast)
	if err != nil {
		return
	}
	_ = f.client.Set(ctx, f.key(username, months), raw, forecastTTL).Err()
}

func (f *ForecastCache) key(username string, months int) string {
	return fmt.Sprintf("forecast:%s:%d", username, months)
}
