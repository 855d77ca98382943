package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Pranali0315/NomadHelp/internal/config"
	"github.com/Pranali0315/NomadHelp/internal/model"
)

// paramKey is the query parameter used for per-param rate limiting:
// the travel-guide location query.
const paramKey = "location"

// limiterEntry is one bucket with the time it was last consulted, so stale
// entries can be reaped.
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterTable is a keyed set of rate limiters sharing one configuration.
// Rates arrive as requests-per-minute and are converted to the per-second
// units rate.Limiter expects.
type limiterTable struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	configure func() (ratePerMinute float64, burst int)
}

func newLimiterTable(configure func() (float64, int)) *limiterTable {
	return &limiterTable{
		entries:   make(map[string]*limiterEntry),
		configure: configure,
	}
}

func (t *limiterTable) get(key string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[key]; ok {
		e.lastSeen = time.Now()
		return e.limiter
	}
	rpm, burst := t.configure()
	limiter := rate.NewLimiter(rate.Limit(rpm/60.0), burst)
	t.entries[key] = &limiterEntry{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

func (t *limiterTable) reapStale(timeout time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, e := range t.entries {
		if time.Since(e.lastSeen) > timeout {
			delete(t.entries, key)
		}
	}
}

func (t *limiterTable) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string]*limiterEntry)
}

var (
	// globalLimiters caps total request volume per client IP.
	globalLimiters = newLimiterTable(config.GetGlobalRateLimiterConfig)
	// paramLimiters caps repeated lookups of the same location per client IP.
	paramLimiters = newLimiterTable(config.GetParamRateLimiterConfig)
)

// StartRateLimiterCleanup starts a background goroutine that periodically
// removes limiter entries not seen within the configured cleanup timeout.
func StartRateLimiterCleanup() {
	go func() {
		for {
			time.Sleep(time.Minute)
			timeout := config.GetRateLimiterCleanupTimeout()
			globalLimiters.reapStale(timeout)
			paramLimiters.reapStale(timeout)
		}
	}()
}

// ResetVisitors clears all limiter state. Used primarily for testing.
func ResetVisitors() {
	globalLimiters.reset()
	paramLimiters.reset()
}

// getIP extracts the client's IP address from the HTTP request, considering X-Forwarded-For headers.
func getIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr // fallback
	}
	return ip
}

func writeRateLimited(w http.ResponseWriter, errMsg, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(model.Response{
		Error:   &errMsg,
		Message: message,
	})
}

// RateLimitMiddleware returns an HTTP middleware that enforces global and per-parameter rate limiting.
// If the rate limit is exceeded, it responds with a 429 status and a JSON error message.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := getIP(r)
		param := r.URL.Query().Get(paramKey)
		if param == "" {
			// missing param shares a single bucket
			param = "__none__"
		}

		if !globalLimiters.get(ip).Allow() {
			writeRateLimited(w,
				"Rate limit exceeded: too many requests per user/IP",
				"Too Many Requests (global limit)")
			return
		}
		if !paramLimiters.get(ip+"|"+param).Allow() {
			writeRateLimited(w,
				"Rate limit exceeded: too many requests per unique location per user/IP",
				"Too Many Requests (per-param limit)")
			return
		}
		next.ServeHTTP(w, r)
	})
}
