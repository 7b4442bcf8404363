package ratelimit

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultMaxKeys bounds how many distinct keys one window tracks.
const DefaultMaxKeys = 10000

// Decision is the outcome of one Allow call. RetryAfter is measured on the
// limiter clock and is zero when the hit was allowed.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// SlidingWindow allows at most limit hits per key inside any window-long interval.
// Once maxKeys keys are tracked, hits from unseen keys are refused until old
// keys expire.
type SlidingWindow struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	maxKeys int
	hits    map[string][]time.Time
	clock   clockwork.Clock
	calls   int
}

func NewSlidingWindow(limit int, window time.Duration, clock clockwork.Clock) *SlidingWindow {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SlidingWindow{
		limit:   limit,
		window:  window,
		maxKeys: DefaultMaxKeys,
		hits:    make(map[string][]time.Time),
		clock:   clock,
	}
}

// WithMaxKeys overrides DefaultMaxKeys. Values below 1 keep the current bound.
func (l *SlidingWindow) WithMaxKeys(n int) *SlidingWindow {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > 0 {
		l.maxKeys = n
	}
	return l
}

func (l *SlidingWindow) Allow(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	cutoff := now.Add(-l.window)
	recent := pruneBefore(l.hits[key], cutoff)

	l.calls++
	if l.calls%256 == 0 {
		l.sweep(cutoff)
	}

	if _, tracked := l.hits[key]; !tracked && len(l.hits) >= l.maxKeys {
		l.sweep(cutoff)
		if len(l.hits) >= l.maxKeys {
			return Decision{
				Allowed:    false,
				Limit:      l.limit,
				Remaining:  0,
				ResetAt:    now.Add(l.window),
				RetryAfter: l.window,
			}
		}
	}

	if len(recent) >= l.limit {
		l.hits[key] = recent
		resetAt := recent[0].Add(l.window)
		return Decision{
			Allowed:    false,
			Limit:      l.limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: resetAt.Sub(now),
		}
	}

	recent = append(recent, now)
	l.hits[key] = recent
	return Decision{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - len(recent),
		ResetAt:   recent[0].Add(l.window),
	}
}

func (l *SlidingWindow) sweep(cutoff time.Time) {
	for key, items := range l.hits {
		kept := pruneBefore(items, cutoff)
		if len(kept) == 0 {
			delete(l.hits, key)
			continue
		}
		l.hits[key] = kept
	}
}

func pruneBefore(items []time.Time, cutoff time.Time) []time.Time {
	idx := 0
	for idx < len(items) && !items[idx].After(cutoff) {
		idx++
	}
	if idx == 0 {
		return items
	}
	return append(items[:0:0], items[idx:]...)
}
