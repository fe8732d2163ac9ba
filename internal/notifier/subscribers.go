// Package notifier manages daily reminder subscriptions and the
// scheduled job that delivers them.
package notifier

import "sync"

// Subscribers is the process-lifetime set of users opted into daily
// reminders. It is not persisted; a restart clears it. Safe for
// concurrent use by the message handlers and the scheduler job.
type Subscribers struct {
	mu  sync.Mutex
	set map[int64]bool
}

// NewSubscribers creates an empty subscriber set.
func NewSubscribers() *Subscribers {
	return &Subscribers{set: make(map[int64]bool)}
}

// Subscribe adds the user and reports whether they were newly added.
func (s *Subscribers) Subscribe(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set[userID] {
		return false
	}
	s.set[userID] = true
	return true
}

// Unsubscribe removes the user and reports whether they were subscribed.
func (s *Subscribers) Unsubscribe(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set[userID] {
		return false
	}
	delete(s.set, userID)
	return true
}

// IDs returns a snapshot of the current subscribers.
func (s *Subscribers) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.set))
	for id := range s.set {
		ids = append(ids, id)
	}
	return ids
}
