// Package ratelimit implements per-client, per-route request limits.
//
// Limiting here is advisory (politeness towards the upstream API), not a
// security boundary: counters are best-effort and implementations fail
// open when their backing store is unavailable.
package ratelimit

import (
	"context"
	"crypto/sha512"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	ua "github.com/mileusna/useragent"
)

// Bucket is a route-class limit: Requests per Time window.
type Bucket struct {
	Name     string
	Requests int
	Time     time.Duration
}

// Result of a single Hit against a bucket.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
	Reset      time.Time
}

// Stats summarizes limiter activity for health reporting.
type Stats struct {
	Total  int
	Active int
}

// Limiter counts requests per client key and bucket. Hit records one
// request and reports whether it is within the bucket's limit.
type Limiter interface {
	Hit(ctx context.Context, key string, b Bucket) (Result, error)
	Stats(ctx context.Context) Stats
}

// Headers returns the standard rate limit headers for a Result.
func (r Result) Headers() map[string]string {
	h := map[string]string{
		"X-RateLimit-Limit":     strconv.Itoa(r.Limit),
		"X-RateLimit-Remaining": strconv.Itoa(r.Remaining),
		"X-RateLimit-Reset":     strconv.FormatInt(r.Reset.Unix(), 10),
	}

	if !r.Allowed {
		h["Retry-After"] = strconv.Itoa(r.RetryAfterSeconds())
	}

	return h
}

// RetryAfterSeconds rounds the retry hint up to whole seconds, never
// returning less than 1 for a rejected request.
func (r Result) RetryAfterSeconds() int {
	secs := int((r.RetryAfter + time.Second - 1) / time.Second)

	if secs < 1 {
		secs = 1
	}

	return secs
}

// ClientKey derives the limiter key for a request. The first forwarded
// client IP is preferred; failing that, the parsed user agent plus the
// request trace header. Identifiers are hashed for privacy.
func ClientKey(r *http.Request) string {
	id := forwardedIP(r)

	if id == "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
			id = host
		} else {
			id = r.RemoteAddr
		}
	}

	if id == "" {
		// Weak identifier, acceptable because limiting is advisory
		agent := ua.Parse(r.UserAgent())
		id = agent.Name + "/" + agent.Version + "-" + r.Header.Get("X-Request-Trace")
	}

	hasher := sha512.New()
	hasher.Write([]byte(id))

	return fmt.Sprintf("%x", hasher.Sum(nil))
}

func forwardedIP(r *http.Request) string {
	hops := strings.Split(strings.ReplaceAll(r.Header.Get("X-Forwarded-For"), " ", ""), ",")

	return hops[0]
}
