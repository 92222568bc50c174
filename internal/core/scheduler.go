package core

import (
	"sync"
	"time"
)

// ConfirmScheduler holds the pending delivery-confirmation tasks, one per
// sent message, keyed by message id. It exists so pending timers are an
// explicit, countable resource instead of anonymous fire-and-forget
// callbacks. Timer callbacks run off the hub goroutine, so the task map is
// the one piece of core state that needs a lock; fired ids are reported
// back through a channel and applied on the hub loop.
type ConfirmScheduler struct {
	mu     sync.Mutex
	tasks  map[string]*time.Timer
	fired  chan string
	closed bool
}

// NewConfirmScheduler constructs a scheduler with an empty task registry.
func NewConfirmScheduler() *ConfirmScheduler {
	return &ConfirmScheduler{
		tasks: make(map[string]*time.Timer),
		fired: make(chan string, 64),
	}
}

// Schedule arms a one-shot confirmation for the message after the delay.
// A message already holding a pending task keeps its original timer.
func (s *ConfirmScheduler) Schedule(messageID string, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if _, ok := s.tasks[messageID]; ok {
		return
	}
	s.tasks[messageID] = time.AfterFunc(delay, func() {
		s.fire(messageID)
	})
}

func (s *ConfirmScheduler) fire(messageID string) {
	s.mu.Lock()
	_, pending := s.tasks[messageID]
	if pending {
		delete(s.tasks, messageID)
	}
	closed := s.closed
	s.mu.Unlock()

	// Cancelled between the timer firing and the lock being taken.
	if !pending || closed {
		return
	}

	select {
	case s.fired <- messageID:
	default:
		// The hub stopped draining; dropping the confirmation beats
		// blocking a timer goroutine forever.
	}
}

// Cancel removes a pending task. Returns false if no task was pending for
// that id.
func (s *ConfirmScheduler) Cancel(messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[messageID]
	if !ok {
		return false
	}
	delete(s.tasks, messageID)
	task.Stop()
	return true
}

// Fired yields message ids whose confirmation delay has elapsed.
func (s *ConfirmScheduler) Fired() <-chan string {
	return s.fired
}

// Len reports the number of pending tasks.
func (s *ConfirmScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Shutdown stops every pending timer and refuses further scheduling.
func (s *ConfirmScheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, task := range s.tasks {
		task.Stop()
		delete(s.tasks, id)
	}
}
