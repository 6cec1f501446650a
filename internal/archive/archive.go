package archive

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"
)

// Store persists generated drafts.
type Store interface {
	Put(ctx context.Context, entry Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, limit int) ([]Entry, error)
	// Prune deletes entries created before cutoff and reports how many.
	Prune(ctx context.Context, cutoff time.Time) (int, error)
	Close() error
}

// Entry is one generated document with its rendered post.
type Entry struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Category  string          `json:"category"`
	Raw       json.RawMessage `json:"raw"`
	Title     string          `json:"title"`
	Markup    string          `json:"markup"`
	PostID    uint64          `json:"post_id,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

var ErrNotFound = errors.New("draft not found")

// MemoryStore keeps drafts in process memory.
type MemoryStore struct {
	entries map[string]Entry
	mutex   sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Put(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		return errors.New("draft id is required")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.entries[entry.ID] = entry
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &entry, nil
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Entry, error) {
	s.mutex.RLock()
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	s.mutex.RUnlock()
	return newestFirst(out, limit), nil
}

func (s *MemoryStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	removed := 0
	for id, e := range s.entries {
		if e.CreatedAt.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func newestFirst(entries []Entry, limit int) []Entry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
