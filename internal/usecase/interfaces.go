package usecase

import "time"

// RateLimiter is satisfied by ratelimit.RateLimiter.
type RateLimiter interface {
	Allow(subject, action string) (bool, time.Duration)
}

type allowAll struct{}

func (allowAll) Allow(string, string) (bool, time.Duration) { return true, 0 }
