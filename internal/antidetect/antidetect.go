// internal/antidetect/antidetect.go

// Package antidetect provides the small anti-detection helpers the run
// needs: believable user agents for the browser session and randomized
// pacing for detail-page batches.
package antidetect

import (
	"math/rand"
	"sync"
	"time"
)

// UserAgentRotator rotates user agents
type UserAgentRotator struct {
	agents []string
	mu     sync.RWMutex
	index  int
}

// NewUserAgentRotator creates a new user agent rotator
func NewUserAgentRotator(agents []string) *UserAgentRotator {
	if len(agents) == 0 {
		agents = getDefaultUserAgents()
	}
	return &UserAgentRotator{
		agents: agents,
	}
}

// GetNext returns the next user agent
func (r *UserAgentRotator) GetNext() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	agent := r.agents[r.index]
	r.index = (r.index + 1) % len(r.agents)
	return agent
}

// GetRandom returns a random user agent
func (r *UserAgentRotator) GetRandom() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.agents[rand.Intn(len(r.agents))]
}

// DelayRandomizer provides random delays
type DelayRandomizer struct {
	min time.Duration
	max time.Duration
}

// NewDelayRandomizer creates a new delay randomizer
func NewDelayRandomizer(min, max time.Duration) *DelayRandomizer {
	if max <= min {
		max = min + time.Millisecond
	}
	return &DelayRandomizer{min: min, max: max}
}

// GetDelay returns a random delay within the configured range
func (dr *DelayRandomizer) GetDelay() time.Duration {
	diff := dr.max - dr.min
	return dr.min + time.Duration(rand.Int63n(int64(diff)))
}

// getDefaultUserAgents returns current desktop browser user agents.
func getDefaultUserAgents() []string {
	return []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Version/17.5 Safari/605.1.15",
	}
}
