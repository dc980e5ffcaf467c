package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newLimitedHandler(t *testing.T, rps float64, burst int) (*RateLimitMiddleware, func(addr, forwarded string) int) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	rl := NewRateLimitMiddleware(ctx, rps, burst)
	handler := rl.Middleware(okHandler())
	send := func(addr, forwarded string) int {
		r := httptest.NewRequest(http.MethodGet, "/books", nil)
		r.RemoteAddr = addr
		if forwarded != "" {
			r.Header.Set("X-Forwarded-For", forwarded)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}
	return rl, send
}

func TestRateLimitMiddleware(t *testing.T) {
	_, send := newLimitedHandler(t, 0.001, 2)

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1", ""))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1", ""))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1", ""))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1", ""), "other clients keep their own bucket")
}

func TestRateLimitMiddleware_PortDoesNotMatter(t *testing.T) {
	_, send := newLimitedHandler(t, 0.001, 1)

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000", ""))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5001", ""))
}

func TestRateLimitMiddleware_IgnoresForwardedForByDefault(t *testing.T) {
	rl, send := newLimitedHandler(t, 0.001, 1)

	allowed := 0
	for i := 0; i < 20; i++ {
		if send("10.0.0.1:1234", fmt.Sprintf("203.0.113.%d", i)) == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
	assert.Len(t, rl.clients, 1)
}

func TestRateLimitMiddleware_TrustedForwardedFor(t *testing.T) {
	rl, send := newLimitedHandler(t, 0.001, 1)
	rl.TrustForwardedFor = true

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1", "203.0.113.7, 10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:2", "203.0.113.7"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:3", "203.0.113.8"))
	assert.Equal(t, http.StatusOK, send("10.0.0.9:1", "not-an-ip"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.9:2", "also-not-an-ip"), "unparsable header falls back to the peer address")
}

func TestRateLimitMiddleware_DropIdle(t *testing.T) {
	rl, send := newLimitedHandler(t, 0.001, 1)
	now := time.Now()
	rl.now = func() time.Time { return now }

	send("10.0.0.1:1", "")
	now = now.Add(idleClientTTL + time.Second)
	send("10.0.0.2:1", "")
	rl.dropIdle()

	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "10.0.0.2")
}
