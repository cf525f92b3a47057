package ratelimit

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientKeyPrefersForwardedIP(t *testing.T) {
	r1 := httptest.NewRequest("GET", "/", nil)
	r1.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r1.RemoteAddr = "10.0.0.1:1234"

	r2 := httptest.NewRequest("GET", "/", nil)
	r2.Header.Set("X-Forwarded-For", "203.0.113.7")
	r2.RemoteAddr = "10.0.0.2:9999"

	assert.Equal(t, ClientKey(r1), ClientKey(r2))
}

func TestClientKeyFallsBackToRemoteAddr(t *testing.T) {
	r1 := httptest.NewRequest("GET", "/", nil)
	r1.RemoteAddr = "192.0.2.1:1111"

	r2 := httptest.NewRequest("GET", "/", nil)
	r2.RemoteAddr = "192.0.2.1:2222"

	r3 := httptest.NewRequest("GET", "/", nil)
	r3.RemoteAddr = "192.0.2.9:1111"

	// Same host, different port is the same client
	assert.Equal(t, ClientKey(r1), ClientKey(r2))
	assert.NotEqual(t, ClientKey(r1), ClientKey(r3))
}

func TestClientKeyIsHashed(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.1:1111"

	key := ClientKey(r)

	// sha512 hex digest, no raw identifier leaks into storage keys
	assert.Len(t, key, 128)
	assert.NotContains(t, key, "192.0.2.1")
}

func TestResultHeaders(t *testing.T) {
	allowed := Result{Allowed: true, Limit: 5, Remaining: 3}

	h := allowed.Headers()
	assert.Equal(t, "5", h["X-RateLimit-Limit"])
	assert.Equal(t, "3", h["X-RateLimit-Remaining"])
	assert.NotContains(t, h, "Retry-After")

	rejected := Result{Allowed: false, Limit: 5, Remaining: 0, RetryAfter: 1500 * 1000 * 1000}

	h = rejected.Headers()
	assert.Equal(t, "2", h["Retry-After"])
}

func TestRetryAfterSecondsNeverBelowOne(t *testing.T) {
	assert.Equal(t, 1, Result{}.RetryAfterSeconds())
}
