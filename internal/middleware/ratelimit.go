package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/little-lemon/internal/config"
)

// bucketScript refills continuously at rate tokens per millisecond, then
// spends one token if a whole one is available.  Reply: {allowed, left, wait_ms}.
var bucketScript = redis.NewScript(`
local capacity = tonumber(ARGV[2])
local rate = tonumber(ARGV[3])
local now = tonumber(ARGV[1])

local tokens = tonumber(redis.call('HGET', KEYS[1], 'tokens') or capacity)
local seen = tonumber(redis.call('HGET', KEYS[1], 'seen_ms') or now)
tokens = math.min(capacity, tokens + math.max(0, now - seen) * rate)

local allowed, wait = 0, 0
if tokens >= 1 then
  allowed = 1
  tokens = tokens - 1
else
  wait = math.ceil((1 - tokens) / rate)
end

redis.call('HSET', KEYS[1], 'tokens', tostring(tokens), 'seen_ms', now)
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return {allowed, math.floor(tokens), wait}
`)

// bucketReply is the decoded result of one bucketScript call.
type bucketReply struct {
	Allowed   bool
	Remaining int64
	Wait      time.Duration
}

func decodeBucketReply(vals []int64) (bucketReply, bool) {
	if len(vals) != 3 {
		return bucketReply{}, false
	}
	return bucketReply{
		Allowed:   vals[0] == 1,
		Remaining: vals[1],
		Wait:      time.Duration(vals[2]) * time.Millisecond,
	}, true
}

// refillPerMs converts the configured refill into tokens per millisecond.
func refillPerMs(cfg config.RateLimitConfig) float64 {
	if cfg.RefillInterval <= 0 {
		return 0
	}
	return float64(cfg.RefillTokens) * float64(time.Millisecond) / float64(cfg.RefillInterval)
}

// NewTokenBucket returns a per-client throttle backed by Redis.  It passes
// every request through when limiting is disabled or no client is given,
// and fails open on Redis errors.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	rate := refillPerMs(cfg)
	if !cfg.Enabled || rdb == nil || rate <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	rateArg := strconv.FormatFloat(rate, 'g', -1, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := buildRateKey(cfg, c)
			vals, err := bucketScript.Run(c.Request().Context(), rdb, []string{key},
				time.Now().UnixMilli(), cfg.Capacity, rateArg, cfg.TTL.Milliseconds()).Int64Slice()
			if err != nil {
				c.Logger().Warnf("throttle: redis unavailable for %s: %v", key, err)
				return next(c)
			}
			reply, ok := decodeBucketReply(vals)
			if !ok {
				c.Logger().Warnf("throttle: unexpected reply for %s: %v", key, vals)
				return next(c)
			}
			if cfg.Debug {
				c.Response().Header().Set("X-RateLimit-Key", key)
			}
			if !reply.Allowed {
				return throttled(c, cfg, reply)
			}
			setRateHeaders(c, cfg, reply)
			return next(c)
		}
	}
}

func setRateHeaders(c echo.Context, cfg config.RateLimitConfig, reply bucketReply) {
	h := c.Response().Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
	h.Set("X-RateLimit-Remaining", strconv.FormatInt(reply.Remaining, 10))
}

// throttled answers 429 in the API's error shape.
func throttled(c echo.Context, cfg config.RateLimitConfig, reply bucketReply) error {
	setRateHeaders(c, cfg, reply)
	secs := retryAfterSeconds(reply.Wait)
	c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
	return c.JSON(http.StatusTooManyRequests, echo.Map{
		"error": fmt.Sprintf("request was throttled, expected available in %d seconds", secs),
	})
}

// retryAfterSeconds rounds up to whole seconds, never below one.
func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

var rateKeyParts = []string{"ip", "user", "route"}

// buildRateKey names the bucket for c.  KeyStrategy lists the parts to key
// on, joined by "_" or ","; parts always appear in ip, user, route order and
// an empty or unrecognised strategy keys on all three.  The route part is
// the registered pattern, so /menu-items/1 and /menu-items/2 share a bucket.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
	want := map[string]bool{}
	for _, p := range strings.FieldsFunc(strings.ToLower(cfg.KeyStrategy), func(r rune) bool { return r == '_' || r == ',' }) {
		want[strings.TrimSpace(p)] = true
	}
	filtered := false
	for _, p := range rateKeyParts {
		filtered = filtered || want[p]
	}

	var b strings.Builder
	b.WriteString(cfg.Prefix)
	for _, p := range rateKeyParts {
		if filtered && !want[p] {
			continue
		}
		b.WriteString(":" + p + "=")
		switch p {
		case "ip":
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			b.WriteString(ip)
		case "user":
			b.WriteString(currentUserID(c))
		case "route":
			b.WriteString(c.Request().Method + " " + c.Path())
		}
	}
	return b.String()
}
