package store

import (
	"context"
	"sync"
	"time"

	"wavecast-server-go/internal/domain/task"
)

type memoryEntry struct {
	outcome   task.Outcome
	expiresAt time.Time
}

type memoryStore struct {
	items       map[string]memoryEntry
	mutex       sync.RWMutex
	ttl         time.Duration
	cleanupFreq time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewMemory builds an in-memory outcome store with periodic expiry.
func NewMemory(cfg Config) task.OutcomeStore {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	s := &memoryStore{
		items:       make(map[string]memoryEntry),
		ttl:         ttl,
		cleanupFreq: 5 * time.Minute,
		stop:        make(chan struct{}),
	}
	go s.gcLoop()
	return s
}

func (s *memoryStore) gcLoop() {
	ticker := time.NewTicker(s.cleanupFreq)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.cleanupExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *memoryStore) cleanupExpired() {
	now := time.Now()
	s.mutex.Lock()
	for handle, entry := range s.items {
		if now.After(entry.expiresAt) {
			delete(s.items, handle)
		}
	}
	s.mutex.Unlock()
}

func (s *memoryStore) Put(_ context.Context, handle string, outcome task.Outcome) error {
	s.mutex.Lock()
	s.items[handle] = memoryEntry{
		outcome:   outcome,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mutex.Unlock()
	return nil
}

func (s *memoryStore) Get(_ context.Context, handle string) (task.Outcome, bool, error) {
	s.mutex.RLock()
	entry, ok := s.items[handle]
	s.mutex.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return task.Outcome{}, false, nil
	}
	return entry.outcome, true, nil
}

func (s *memoryStore) Close(context.Context) error {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	return nil
}
