package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultCommandsPerMinute is the default per-chat command rate
	DefaultCommandsPerMinute = 20
	// DefaultBurstSize is the default burst size
	DefaultBurstSize = 5
	// cleanupInterval is the interval for cleaning up stale limiters
	cleanupInterval = 5 * time.Minute
	// limiterTTL is the time-to-live for inactive limiters
	limiterTTL = 10 * time.Minute
)

// ChatLimiter manages per-chat rate limiting so one noisy chat cannot starve
// the rest.
type ChatLimiter struct {
	limiters  map[int64]*limiterEntry
	mu        sync.Mutex
	rateLimit float64
	burstSize int
	stopCh    chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewChatLimiter creates a ChatLimiter with default settings
func NewChatLimiter() *ChatLimiter {
	return NewChatLimiterWithConfig(DefaultCommandsPerMinute, DefaultBurstSize)
}

// NewChatLimiterWithConfig creates a ChatLimiter with custom configuration
func NewChatLimiterWithConfig(commandsPerMinute, burstSize int) *ChatLimiter {
	cl := &ChatLimiter{
		limiters:  make(map[int64]*limiterEntry),
		rateLimit: float64(commandsPerMinute) / 60.0,
		burstSize: burstSize,
		stopCh:    make(chan struct{}),
	}
	go cl.cleanup()
	return cl
}

// Allow reports whether a command from the given chat is allowed
func (c *ChatLimiter) Allow(chatID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.limiters[chatID]
	if !exists {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(c.rateLimit), c.burstSize),
		}
		c.limiters[chatID] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

// cleanup periodically removes stale limiters to prevent memory leaks
func (c *ChatLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for chatID, entry := range c.limiters {
				if now.Sub(entry.lastSeen) > limiterTTL {
					delete(c.limiters, chatID)
				}
			}
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the cleanup goroutine
func (c *ChatLimiter) Stop() {
	close(c.stopCh)
}
