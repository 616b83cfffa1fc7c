package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/azaliaz/luxefurnish/user-service/internal/logger"
)

// maxLimiters bounds the per-client limiter table; it is reset when full.
const maxLimiters = 10000

type rateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// newRateLimiter returns nil for rps <= 0, which disables limiting.
func newRateLimiter(rps int) *rateLimiter {
	if rps <= 0 {
		return nil
	}
	return &rateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    rps * 2,
	}
}

func (rl *rateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) >= maxLimiters {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

func (rl *rateLimiter) middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if rl == nil {
			ctx.Next()
			return
		}
		key := ctx.ClientIP()
		if !rl.get(key).Allow() {
			log := logger.Get()
			log.Warn().Str("client", key).Str("path", ctx.FullPath()).Msg("rate limit exceeded")
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "Too many requests, try again later"})
			return
		}
		ctx.Next()
	}
}
