// Package jobmgr runs named background jobs with cancellation and in-memory
// tracking. The bot uses it for reminder timers: one job per pending
// reminder, stopped either by firing or by an explicit cancel. Jobs remove
// themselves when their runner returns.
package jobmgr

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Notify receives job lifecycle events: name plus "running", "done" or an
// error description. May be nil.
type Notify func(name, status string)

// Manager starts, stops and tracks jobs. Safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	jobs   map[string]context.CancelFunc
	notify Notify
}

// NewManager creates an empty Manager. notify may be nil.
func NewManager(notify Notify) *Manager {
	return &Manager{
		jobs:   make(map[string]context.CancelFunc),
		notify: notify,
	}
}

func (m *Manager) report(name, status string) {
	if m.notify != nil {
		m.notify(name, status)
	}
}

// Start launches runner in its own goroutine under a cancellable context.
// Starting a name that is already running is an error. The job unregisters
// itself when the runner returns.
func (m *Manager) Start(name string, runner func(ctx context.Context) error) error {
	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("jobmgr: job %q is already running", name)
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.jobs[name] = cancel
	m.mu.Unlock()

	m.report(name, "running")

	go func() {
		err := runner(ctx)

		m.mu.Lock()
		delete(m.jobs, name)
		m.mu.Unlock()
		cancel()

		if err != nil && ctx.Err() == nil {
			m.report(name, "error: "+err.Error())
			return
		}
		m.report(name, "done")
	}()

	return nil
}

// Stop cancels the named job and reports whether it was running.
func (m *Manager) Stop(name string) bool {
	m.mu.Lock()
	cancel, ok := m.jobs[name]
	m.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// StopAll cancels every running job.
func (m *Manager) StopAll() {
	m.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(m.jobs))
	for _, cancel := range m.jobs {
		cancels = append(cancels, cancel)
	}
	m.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Running reports whether the named job is live.
func (m *Manager) Running(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.jobs[name]
	return ok
}

// Names returns the names of all live jobs, sorted.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.jobs))
	for name := range m.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
