package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
)

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	// Max requests per window; zero disables limiting
	Max    int
	Window time.Duration
	// KeyGenerator picks the bucket for a request
	KeyGenerator func(*fiber.Ctx) string
	LimitReached fiber.Handler
}

// DefaultRateLimitConfig returns default rate limit config
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Max:    100,
		Window: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return WriteError(c, apperrors.RateLimited())
		},
	}
}

// RateLimitMiddleware is a sliding window limiter kept in Redis sorted sets
type RateLimitMiddleware struct {
	redis  *redis.Client
	config RateLimitConfig
	logger *zap.Logger
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(redisClient *redis.Client, logger *zap.Logger, config ...RateLimitConfig) *RateLimitMiddleware {
	cfg := DefaultRateLimitConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return &RateLimitMiddleware{
		redis:  redisClient,
		config: cfg,
		logger: logger,
	}
}

// Handler returns the rate limit handler
func (m *RateLimitMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.config.Max <= 0 {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s", m.config.KeyGenerator(c))
		now := time.Now()
		windowStart := now.Add(-m.config.Window).UnixNano()
		reset := strconv.FormatInt(now.Add(m.config.Window).Unix(), 10)

		ctx := c.UserContext()

		pipe := m.redis.TxPipeline()
		pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart, 10))
		card := pipe.ZCard(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			// Fail open when the cache is unavailable
			m.logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		count := card.Val()

		c.Set("X-RateLimit-Limit", strconv.Itoa(m.config.Max))
		c.Set("X-RateLimit-Reset", reset)

		if count >= int64(m.config.Max) {
			c.Set("X-RateLimit-Remaining", "0")
			c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(int64(m.config.Window.Seconds()), 10))
			rateLimited.Inc()
			return m.config.LimitReached(c)
		}

		pipe = m.redis.TxPipeline()
		pipe.ZAdd(ctx, key, redis.Z{
			Score:  float64(now.UnixNano()),
			Member: fmt.Sprintf("%d:%s", now.UnixNano(), GetRequestID(c)),
		})
		pipe.Expire(ctx, key, m.config.Window*2)
		if _, err := pipe.Exec(ctx); err != nil {
			m.logger.Warn("failed to record request for rate limiting", zap.Error(err))
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(m.config.Max-int(count)-1))

		return c.Next()
	}
}
