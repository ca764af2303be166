package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowWithinBurst(t *testing.T) {
	r := New(time.Hour, 2)
	assert.True(t, r.Allow("roll:user1"))
	assert.True(t, r.Allow("roll:user1"))
	assert.False(t, r.Allow("roll:user1"))
}

func TestKeysAreIndependent(t *testing.T) {
	r := New(time.Hour, 1)
	assert.True(t, r.Allow("roll:user1"))
	assert.False(t, r.Allow("roll:user1"))
	assert.True(t, r.Allow("roll:user2"))
	assert.True(t, r.Allow("purge:user1"))
}

func TestRetryReportsDelay(t *testing.T) {
	r := New(time.Hour, 1)
	assert.Equal(t, time.Duration(0), r.Retry("k"))
	assert.True(t, r.Allow("k"))
	assert.Greater(t, r.Retry("k"), time.Duration(0))
}

func TestReset(t *testing.T) {
	r := New(time.Hour, 1)
	assert.True(t, r.Allow("k"))
	assert.False(t, r.Allow("k"))
	r.Reset("k")
	assert.True(t, r.Allow("k"))
}

func TestRefillAfterInterval(t *testing.T) {
	r := New(10*time.Millisecond, 1)
	assert.True(t, r.Allow("k"))
	assert.False(t, r.Allow("k"))
	time.Sleep(25 * time.Millisecond)
	assert.True(t, r.Allow("k"))
}
