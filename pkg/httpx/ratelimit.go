package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

// Limit is a token bucket refilled at Requests per Window, holding Burst.
type Limit struct {
	Name     string
	Requests int
	Window   time.Duration
	Burst    int
}

func (l Limit) perSecond() rate.Limit {
	return rate.Limit(float64(l.Requests) / l.Window.Seconds())
}

// FromEnv overrides l with RATELIMIT_<NAME>_REQUESTS, RATELIMIT_<NAME>_WINDOW_SEC
// and RATELIMIT_<NAME>_BURST. Missing or non-positive values keep the default.
func (l Limit) FromEnv() Limit {
	prefix := "RATELIMIT_" + strings.ToUpper(l.Name) + "_"
	if n, ok := positiveEnvInt(prefix + "REQUESTS"); ok {
		l.Requests = n
	}
	if n, ok := positiveEnvInt(prefix + "WINDOW_SEC"); ok {
		l.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnvInt(prefix + "BURST"); ok {
		l.Burst = n
	}
	return l
}

func positiveEnvInt(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	return n, err == nil && n > 0
}

var (
	// StrictLimit guards the admin login form against password guessing.
	StrictLimit = Limit{Name: "strict", Requests: 5, Window: time.Minute, Burst: 5}.FromEnv()

	// ModerateLimit covers writes: public lead signups and bulk deletes.
	ModerateLimit = Limit{Name: "moderate", Requests: 20, Window: time.Minute, Burst: 20}.FromEnv()

	// LenientLimit covers page views, selection toggles and search.
	LenientLimit = Limit{Name: "lenient", Requests: 300, Window: time.Minute, Burst: 100}.FromEnv()
)

// KeyFunc picks the bucket a request is charged to. An empty key is not limited.
type KeyFunc func(*http.Request) string

// ClientIP keys on the first X-Forwarded-For hop, then X-Real-IP, then the
// peer address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// FormField keys on a lower-cased form value, so "Admin@x.io" and
// "admin@x.io" share a bucket.
func FormField(name string) KeyFunc {
	return func(r *http.Request) string {
		if err := r.ParseForm(); err != nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(r.FormValue(name)))
	}
}

// JoinKeys concatenates the non-empty keys of fns with sep.
func JoinKeys(sep string, fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if k := fn(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, sep)
	}
}

// RateLimitDenier writes the response for a throttled request.
type RateLimitDenier func(w http.ResponseWriter, r *http.Request, retryAfter int)

type RateLimitOption func(*buckets)

// WithDenier replaces the JSON 429 body, e.g. with a plain text page.
func WithDenier(d RateLimitDenier) RateLimitOption {
	return func(b *buckets) { b.deny = d }
}

// idleAfter is how long an untouched bucket survives a sweep.
const idleAfter = 5 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type buckets struct {
	limit Limit
	deny  RateLimitDenier

	mu        sync.Mutex
	byKey     map[string]*bucket
	lastSweep time.Time
}

func (b *buckets) take(key string, now time.Time) (ok bool, retryAfter time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if now.Sub(b.lastSweep) >= idleAfter {
		for k, bk := range b.byKey {
			if now.Sub(bk.lastSeen) >= idleAfter {
				delete(b.byKey, k)
			}
		}
		b.lastSweep = now
	}

	bk, found := b.byKey[key]
	if !found {
		bk = &bucket{limiter: rate.NewLimiter(b.limit.perSecond(), b.limit.Burst)}
		b.byKey[key] = bk
	}
	bk.lastSeen = now

	res := bk.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func denyJSON(w http.ResponseWriter, _ *http.Request, _ int) {
	WriteJSON(w, http.StatusTooManyRequests, map[string]any{
		"status":  false,
		"message": "Too many requests. Please try again later.",
	})
}

// RateLimit throttles requests per key under limit.
func RateLimit(limit Limit, key KeyFunc, opts ...RateLimitOption) Middleware {
	b := &buckets{limit: limit, deny: denyJSON, byKey: make(map[string]*bucket), lastSweep: time.Now()}
	for _, opt := range opts {
		opt(b)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				slogx.FromContext(r.Context()).Warn("rate limit: no key, allowing request", "limit", limit.Name)
				next.ServeHTTP(w, r)
				return
			}

			ok, delay := b.take(k, time.Now())
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			retryAfter := max(int(delay.Seconds()), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.Requests))
			w.Header().Set("X-RateLimit-Window", limit.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"limit", limit.Name,
				"key", k,
				"path", r.URL.Path,
				"retry_after", retryAfter,
			)
			b.deny(w, r, retryAfter)
		})
	}
}

// RateLimitByIP charges each client address.
func RateLimitByIP(limit Limit, opts ...RateLimitOption) Middleware {
	return RateLimit(limit, ClientIP, opts...)
}

// RateLimitByIPAndFormField charges each address and form value pair. The login
// form uses it with the email field.
func RateLimitByIPAndFormField(limit Limit, field string, opts ...RateLimitOption) Middleware {
	return RateLimit(limit, JoinKeys(":", ClientIP, FormField(field)), opts...)
}
