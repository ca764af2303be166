package jobmgr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAndCompletion(t *testing.T) {
	m := NewManager(nil)
	done := make(chan struct{})

	err := m.Start("r1", func(ctx context.Context) error {
		close(done)
		return nil
	})
	require.NoError(t, err)

	<-done
	assert.Eventually(t, func() bool { return !m.Running("r1") }, time.Second, 5*time.Millisecond)
}

func TestDuplicateNameRejected(t *testing.T) {
	m := NewManager(nil)
	block := make(chan struct{})

	require.NoError(t, m.Start("r1", func(ctx context.Context) error {
		<-block
		return nil
	}))
	assert.Error(t, m.Start("r1", func(ctx context.Context) error { return nil }))
	close(block)
}

func TestStopCancelsContext(t *testing.T) {
	m := NewManager(nil)
	cancelled := make(chan struct{})

	require.NoError(t, m.Start("r1", func(ctx context.Context) error {
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	}))

	assert.True(t, m.Stop("r1"))
	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("runner context was not cancelled")
	}
	assert.False(t, m.Stop("r1"))
}

func TestNamesSorted(t *testing.T) {
	m := NewManager(nil)
	block := make(chan struct{})
	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, m.Start(name, func(ctx context.Context) error {
			<-block
			return nil
		}))
	}
	assert.Equal(t, []string{"a", "b", "c"}, m.Names())
	close(block)
}

func TestStopAll(t *testing.T) {
	m := NewManager(nil)
	for _, name := range []string{"a", "b"} {
		require.NoError(t, m.Start(name, func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}))
	}
	m.StopAll()
	assert.Eventually(t, func() bool { return len(m.Names()) == 0 }, time.Second, 5*time.Millisecond)
}
