package api

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/CRONANANI/ezana/backend/pkg/config"
	"github.com/CRONANANI/ezana/backend/pkg/logger"
	"github.com/CRONANANI/ezana/backend/pkg/redis"
)

// RateLimiter limits API requests per client.
// With Redis enabled the sliding window is shared across instances,
// otherwise each instance keeps its own token buckets.
type RateLimiter struct {
	cfg    config.RateLimitConfig
	redis  *redis.RateLimiter
	logger *logger.Logger

	trusted []*net.IPNet

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewRateLimiter creates a new API rate limiter
// Invalid trusted proxy entries are skipped; config.Load rejects them earlier.
func NewRateLimiter(cfg config.RateLimitConfig, redisLimiter *redis.RateLimiter, log *logger.Logger) *RateLimiter {
	l := &RateLimiter{
		cfg:     cfg,
		redis:   redisLimiter,
		logger:  log.WithComponent("ratelimit"),
		buckets: make(map[string]*rate.Limiter),
	}
	for _, proxy := range cfg.TrustedProxies {
		network, err := config.ParseCIDR(proxy)
		if err != nil {
			l.logger.WithError(err).Warn("Ignoring trusted proxy")
			continue
		}
		l.trusted = append(l.trusted, network)
	}
	return l
}

// Middleware rejects requests over the limit with 429
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.cfg.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		client := l.clientIP(r)
		allowed, remaining := l.allow(r, client)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			l.logger.WithField("client", client).Debug("Rate limit exceeded")
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(l.cfg.Window.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "Rate limit exceeded",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(r *http.Request, client string) (bool, int) {
	if l.redis != nil && l.redis.Enabled() {
		allowed, remaining, err := l.redis.Allow(r.Context(), redis.RateLimitConfig{
			Key:    "api:" + client,
			Limit:  l.cfg.Limit,
			Window: l.cfg.Window,
		})
		if err == nil {
			return allowed, remaining
		}
		// fall back to the local bucket while Redis is failing
		l.logger.WithError(err).Warn("Redis rate limit failed, using local limiter")
	}

	b := l.bucket(client)
	allowed := b.Allow()
	remaining := int(b.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining
}

func (l *RateLimiter) bucket(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[client]
	if !ok {
		perSecond := rate.Limit(float64(l.cfg.Limit) / l.cfg.Window.Seconds())
		b = rate.NewLimiter(perSecond, l.cfg.Limit)
		l.buckets[client] = b
	}
	return b
}

// clientIP keys requests on the peer address. X-Forwarded-For is read only when
// the peer is a trusted proxy, walking right to left past trusted hops.
func (l *RateLimiter) clientIP(r *http.Request) string {
	peer := remoteHost(r)
	if !l.isTrusted(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !l.isTrusted(hop) {
			return hop
		}
	}
	return peer
}

func (l *RateLimiter) isTrusted(host string) bool {
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, network := range l.trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Prune drops local buckets that have refilled completely
func (l *RateLimiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for client, b := range l.buckets {
		if b.Tokens() >= float64(l.cfg.Limit) {
			delete(l.buckets, client)
			removed++
		}
	}
	return removed
}
