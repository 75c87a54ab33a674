package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryItem struct {
	value      interface{}
	expiration int64 // unix nanos, 0 = no expiry
}

// Memory is a thread-safe in-memory key-value store with TTL. It is the
// default backend: snapshots expire so stale realtime data ages out even if
// a poller stalls, while metadata is kept until overwritten.
type Memory struct {
	mu          sync.RWMutex
	items       map[string]memoryItem
	ttl         time.Duration
	stopCleanup chan struct{}
}

// NewMemory creates a memory store. Snapshot entries expire after ttl
// (0 disables expiry); cleanupInterval drives the periodic sweep.
func NewMemory(ttl, cleanupInterval time.Duration) *Memory {
	m := &Memory{
		items:       make(map[string]memoryItem),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go m.cleanupLoop(cleanupInterval)
	}
	return m
}

func (m *Memory) set(key string, value interface{}, ttl time.Duration) {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}
	m.mu.Lock()
	m.items[key] = memoryItem{value: value, expiration: exp}
	m.mu.Unlock()
}

func (m *Memory) get(key string) (interface{}, bool) {
	m.mu.RLock()
	item, found := m.items[key]
	m.mu.RUnlock()
	if !found {
		return nil, false
	}
	if item.expiration > 0 && time.Now().UnixNano() > item.expiration {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return nil, false
	}
	return item.value, true
}

// GetFeedMeta returns the stored metadata or nil on a miss.
func (m *Memory) GetFeedMeta(_ context.Context, family, id string) (*FeedMeta, error) {
	v, ok := m.get(metaKey(family, id))
	if !ok {
		return nil, nil
	}
	meta := v.(FeedMeta)
	return &meta, nil
}

// SetFeedMeta stores metadata without expiry; it is only ever overwritten.
func (m *Memory) SetFeedMeta(_ context.Context, family, id string, meta FeedMeta) error {
	m.set(metaKey(family, id), meta, 0)
	return nil
}

// GetSnapshot returns the cached snapshot items or nil on a miss.
func (m *Memory) GetSnapshot(_ context.Context, family, id string) ([]json.RawMessage, error) {
	v, ok := m.get(snapshotKey(family, id))
	if !ok {
		return nil, nil
	}
	return v.([]json.RawMessage), nil
}

// SetSnapshot stores the snapshot items under the configured TTL.
func (m *Memory) SetSnapshot(_ context.Context, family, id string, items []json.RawMessage) error {
	m.set(snapshotKey(family, id), items, m.ttl)
	return nil
}

// Count returns the number of stored entries, expired included.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *Memory) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.deleteExpired()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *Memory) deleteExpired() {
	now := time.Now().UnixNano()
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, item := range m.items {
		if item.expiration > 0 && now > item.expiration {
			delete(m.items, key)
		}
	}
}

// Stop halts the cleanup goroutine.
func (m *Memory) Stop() {
	close(m.stopCleanup)
}
