package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPrefixRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	prefix, err := s.GetPrefix("guild-1")
	require.NoError(t, err)
	assert.Empty(t, prefix, "unset prefix means the default applies")

	require.NoError(t, s.SetPrefix("guild-1", "?"))

	prefix, err = s.GetPrefix("guild-1")
	require.NoError(t, err)
	assert.Equal(t, "?", prefix)
}

func TestCommandHistoryIsBounded(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < commandHistoryLimit+5; i++ {
		err := s.AppendCommandToHistory("guild-1", CommandHistoryRecord{
			Command:  fmt.Sprintf("cmd-%d", i),
			Datetime: time.Now(),
		})
		require.NoError(t, err)
	}

	history, err := s.FetchCommandHistory("guild-1")
	require.NoError(t, err)
	require.Len(t, history, commandHistoryLimit)
	assert.Equal(t, fmt.Sprintf("cmd-%d", commandHistoryLimit+4), history[len(history)-1].Command)
}

func TestRemindersSortedByDueTime(t *testing.T) {
	s := newTestStorage(t)
	now := time.Now()

	require.NoError(t, s.AddReminder("guild-1", Reminder{ID: "late", DueAt: now.Add(time.Hour)}))
	require.NoError(t, s.AddReminder("guild-1", Reminder{ID: "soon", DueAt: now.Add(time.Minute)}))

	reminders, err := s.Reminders("guild-1")
	require.NoError(t, err)
	require.Len(t, reminders, 2)
	assert.Equal(t, "soon", reminders[0].ID)
	assert.Equal(t, "late", reminders[1].ID)
}

func TestDeleteReminder(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.AddReminder("guild-1", Reminder{ID: "r1", DueAt: time.Now()}))
	require.NoError(t, s.DeleteReminder("guild-1", "r1"))
	assert.Error(t, s.DeleteReminder("guild-1", "r1"))

	reminders, err := s.Reminders("guild-1")
	require.NoError(t, err)
	assert.Empty(t, reminders)
}

func TestAllRemindersSpansGuilds(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.AddReminder("guild-1", Reminder{ID: "a", DueAt: time.Now()}))
	require.NoError(t, s.AddReminder("guild-2", Reminder{ID: "b", DueAt: time.Now()}))

	all, err := s.AllReminders()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
