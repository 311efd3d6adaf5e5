package service

import (
	"sync"
	"time"
)

// RateLimiter limita la frecuencia de solicitudes por clave.
type RateLimiter interface {
	Allow(key string) bool
}

type memoryRateLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	hits      map[string][]time.Time
	lastSweep time.Time
}

// NewRateLimiter crea un rate limiter en memoria.
func NewRateLimiter(window time.Duration, max int) RateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &memoryRateLimiter{
		window:    window,
		max:       max,
		hits:      make(map[string][]time.Time),
		lastSweep: time.Now().UTC(),
	}
}

func (l *memoryRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now().UTC()
	cutoff := now.Add(-l.window)
	l.sweep(now, cutoff)
	entries := l.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	kept = append(kept, now)
	l.hits[key] = kept
	return true
}

// sweep elimina, a lo sumo una vez por ventana, las claves cuyos registros ya
// expiraron; sin esto los emails vistos una sola vez quedarían en el mapa
// para siempre.
func (l *memoryRateLimiter) sweep(now, cutoff time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for key, entries := range l.hits {
		kept := entries[:0]
		for _, ts := range entries {
			if ts.After(cutoff) {
				kept = append(kept, ts)
			}
		}
		if len(kept) == 0 {
			delete(l.hits, key)
		} else {
			l.hits[key] = kept
		}
	}
}
