package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatLimiter_BurstThenDeny(t *testing.T) {
	limiter := NewChatLimiterWithConfig(1, 2)
	defer limiter.Stop()

	assert.True(t, limiter.Allow(1))
	assert.True(t, limiter.Allow(1))
	assert.False(t, limiter.Allow(1), "burst exhausted")
}

func TestChatLimiter_ChatsAreIndependent(t *testing.T) {
	limiter := NewChatLimiterWithConfig(1, 1)
	defer limiter.Stop()

	assert.True(t, limiter.Allow(1))
	assert.False(t, limiter.Allow(1))
	assert.True(t, limiter.Allow(2), "a different chat has its own budget")
}
