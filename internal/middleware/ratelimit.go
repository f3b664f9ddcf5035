package middleware

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v3"
)

// RateLimiter throttles updates per user with a token bucket
type RateLimiter struct {
	limit  rate.Limit
	burst  int
	logger *zap.Logger

	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
}

// NewRateLimiter allows limit updates per second per user with the given burst
func NewRateLimiter(limit float64, burst int, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(limit),
		burst:    burst,
		logger:   logger,
		limiters: make(map[int64]*rate.Limiter),
	}
}

// Allow reports whether the user may proceed now
func (r *RateLimiter) Allow(userID int64) bool {
	return r.limiter(userID).Allow()
}

func (r *RateLimiter) limiter(userID int64) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	limiter, exists := r.limiters[userID]
	if !exists {
		limiter = rate.NewLimiter(r.limit, r.burst)
		r.limiters[userID] = limiter
	}
	return limiter
}

// Middleware drops updates over the limit. A throttled callback is still
// answered so the client stops its spinner.
func (r *RateLimiter) Middleware() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil || r.Allow(sender.ID) {
				return next(c)
			}

			r.logger.Warn("Rate limit exceeded, dropping update",
				zap.Int64("user_id", sender.ID),
			)
			if c.Callback() != nil {
				if err := c.Respond(); err != nil {
					r.logger.Debug("Failed to acknowledge throttled callback", zap.Error(err))
				}
			}
			return nil
		}
	}
}
