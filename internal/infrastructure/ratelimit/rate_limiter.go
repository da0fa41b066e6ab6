package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	ActionSendMessage = "send_message"
	ActionStartChat   = "start_chat"
	ActionAssistant   = "assistant"
)

// Policy is a token bucket of Burst tokens refilled one per Every.
type Policy struct {
	Burst int
	Every time.Duration
}

var DefaultPolicies = map[string]Policy{
	// 10 messages, one more every 6 seconds
	ActionSendMessage: {Burst: 10, Every: 6 * time.Second},
	// 5 new conversations, one more every 12 minutes
	ActionStartChat: {Burst: 5, Every: 12 * time.Minute},
	ActionAssistant: {Burst: 30, Every: 2 * time.Second},
}

var defaultPolicy = Policy{Burst: 20, Every: 3 * time.Second}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one bucket per subject and action.
type RateLimiter struct {
	policies map[string]Policy
	buckets  map[string]*bucket
	mutex    sync.Mutex
	now      func() time.Time
}

func NewRateLimiter(policies map[string]Policy) *RateLimiter {
	if policies == nil {
		policies = DefaultPolicies
	}
	return &RateLimiter{
		policies: policies,
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}
}

func (rl *RateLimiter) policy(action string) Policy {
	if p, ok := rl.policies[action]; ok {
		return p
	}
	return defaultPolicy
}

// Allow consumes a token for subject doing action. When the bucket is empty it
// reports how long until the next token.
func (rl *RateLimiter) Allow(subject, action string) (bool, time.Duration) {
	key := subject + ":" + action
	now := rl.now()

	rl.mutex.Lock()
	b, ok := rl.buckets[key]
	if !ok {
		p := rl.policy(action)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(p.Every), p.Burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	rl.mutex.Unlock()

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > maxIdle {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) Len() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return len(rl.buckets)
}

// StartCleanupRoutine prunes idle buckets every interval until ctx is done.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			}
		}
	}()
}
