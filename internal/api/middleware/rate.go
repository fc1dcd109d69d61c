package middleware

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/osa911/contactrelay/internal/api/constants"
	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/logging"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Sustained requests per second per caller. Zero disables limiting.
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
	// Buckets idle for longer than this are dropped
	IdleTTL time.Duration
	// Provisioned API keys. Only these get a bucket of their own; any other
	// X-API-Key value is ignored and the caller is keyed by IP.
	APIKeys []string
}

// ErrRateLimitExceeded is attached to the gin context of rejected requests
var ErrRateLimitExceeded = errors.New("rate limit exceeded")

const (
	defaultIdleTTL  = 5 * time.Minute
	cleanupInterval = time.Minute
)

type callerState struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per caller key. State lives in this
// process only; several replicas each enforce their own limit.
type RateLimiter struct {
	config  RateLimitConfig
	logger  *logging.Logger
	now     func() time.Time
	apiKeys map[string]struct{}
	mu      sync.Mutex
	callers map[string]*callerState

	stopOnce sync.Once
	stop     chan struct{}
}

// NewRateLimiter creates a limiter and starts its cleanup loop. Call Close
// to stop the loop.
func NewRateLimiter(config RateLimitConfig, logger *logging.Logger) *RateLimiter {
	if config.IdleTTL <= 0 {
		config.IdleTTL = defaultIdleTTL
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	rl := &RateLimiter{
		config:  config,
		logger:  logger,
		now:     time.Now,
		apiKeys: make(map[string]struct{}, len(config.APIKeys)),
		callers: make(map[string]*callerState),
		stop:    make(chan struct{}),
	}
	for _, key := range config.APIKeys {
		if key != "" {
			rl.apiKeys[key] = struct{}{}
		}
	}

	if rl.Enabled() {
		go rl.cleanup()
	}

	return rl
}

// Enabled reports whether requests are limited at all
func (rl *RateLimiter) Enabled() bool {
	return rl.config.RPS > 0
}

// Allow takes one token from key's bucket. When the bucket is empty it
// returns false and how long until a token is available.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, retryAfter time.Duration) {
	if !rl.Enabled() {
		return true, 0, 0
	}

	now := rl.now()

	rl.mu.Lock()
	state, ok := rl.callers[key]
	if !ok {
		state = &callerState{limiter: rate.NewLimiter(rate.Limit(rl.config.RPS), rl.config.Burst)}
		rl.callers[key] = state
	}
	state.lastSeen = now
	rl.mu.Unlock()

	if state.limiter.AllowN(now, 1) {
		return true, int(state.limiter.TokensAt(now)), 0
	}

	missing := 1 - state.limiter.TokensAt(now)
	retryAfter = time.Duration(missing / rl.config.RPS * float64(time.Second))
	return false, 0, retryAfter
}

// Middleware rejects callers over their limit with 429 before the handler runs
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	if !rl.Enabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	limit := strconv.FormatFloat(rl.config.RPS, 'f', -1, 64)

	return func(c *gin.Context) {
		key := rl.CallerKey(c)
		c.Set(constants.ContextKeyCallerKey, key)

		allowed, remaining, retryAfter := rl.Allow(key)

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))

			rl.logger.Warn("[RATE] %s | %s | %v",
				c.GetString(constants.ContextKeyRequestID), redactCallerKey(key), ErrRateLimitExceeded)
			_ = c.Error(ErrRateLimitExceeded)

			c.AbortWithStatusJSON(http.StatusTooManyRequests, contact.ContactResponse{
				Message: contact.MessageRateLimited,
			})
			return
		}

		c.Next()
	}
}

// Close stops the cleanup loop
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() {
		close(rl.stop)
	})
}

// cleanup periodically removes idle caller buckets
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, state := range rl.callers {
		if now.Sub(state.lastSeen) > rl.config.IdleTTL {
			delete(rl.callers, key)
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.callers)
}

// CallerKey identifies the caller by a provisioned API key, otherwise by
// client IP. Unknown keys never create buckets.
func (rl *RateLimiter) CallerKey(c *gin.Context) string {
	if apiKey := c.GetHeader(constants.HeaderAPIKey); apiKey != "" {
		if _, ok := rl.apiKeys[apiKey]; ok {
			return "key:" + apiKey
		}
	}
	return "ip:" + c.ClientIP()
}

func redactCallerKey(key string) string {
	const keyPrefix = "key:"
	if len(key) > len(keyPrefix) && key[:len(keyPrefix)] == keyPrefix {
		suffix := key[len(keyPrefix):]
		if len(suffix) > 4 {
			suffix = suffix[len(suffix)-4:]
		}
		return keyPrefix + "..." + suffix
	}
	return key
}
