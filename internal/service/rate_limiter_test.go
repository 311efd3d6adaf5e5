package service

import (
	"testing"
	"time"
)

func TestMemoryRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(time.Minute, 2)

	if !limiter.Allow("a@b.com") || !limiter.Allow("a@b.com") {
		t.Fatalf("first two requests must be allowed")
	}
	if limiter.Allow("a@b.com") {
		t.Fatalf("third request within the window must be denied")
	}
	if !limiter.Allow("other@b.com") {
		t.Fatalf("different keys are limited independently")
	}
}

func TestMemoryRateLimiterWindowSlides(t *testing.T) {
	limiter := NewRateLimiter(20*time.Millisecond, 1)

	if !limiter.Allow("a@b.com") {
		t.Fatalf("first request must be allowed")
	}
	if limiter.Allow("a@b.com") {
		t.Fatalf("second request within the window must be denied")
	}
	time.Sleep(30 * time.Millisecond)
	if !limiter.Allow("a@b.com") {
		t.Fatalf("request after the window must be allowed again")
	}
}

func TestMemoryRateLimiterDropsStaleKeys(t *testing.T) {
	limiter := NewRateLimiter(20*time.Millisecond, 1).(*memoryRateLimiter)

	limiter.Allow("once@b.com")
	limiter.Allow("twice@b.com")
	time.Sleep(30 * time.Millisecond)

	// Una petición por otra clave dispara la limpieza de las claves viejas.
	limiter.Allow("fresh@b.com")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.hits["once@b.com"]; ok {
		t.Fatalf("expired keys must be removed from the map")
	}
	if _, ok := limiter.hits["twice@b.com"]; ok {
		t.Fatalf("expired keys must be removed from the map")
	}
	if _, ok := limiter.hits["fresh@b.com"]; !ok {
		t.Fatalf("active key must stay in the map")
	}
}
