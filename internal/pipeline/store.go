package pipeline

import (
	"sync"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

// Store is the shared record store: a concurrently mutated mapping from
// comment id to enriched record. Mutation serializes per key, so different
// attributes of the same record may be merged from different workers
// without a global lock.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*storeEntry
}

type storeEntry struct {
	mu  sync.Mutex
	rec *domain.EnrichedRecord
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*storeEntry)}
}

// Put creates the record for a comment if it does not exist yet,
// initialized with only the comment fields. Re-putting an existing id is a
// no-op; the pipeline never deletes records.
func (s *Store) Put(c domain.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[c.ID]; ok {
		return
	}

	s.entries[c.ID] = &storeEntry{rec: domain.NewEnrichedRecord(c)}
}

// Apply runs fn against the record for id under that record's lock. It
// reports whether the record existed.
func (s *Store) Apply(id string, fn func(rec *domain.EnrichedRecord)) bool {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	fn(entry.rec)

	return true
}

// Get returns a copy of the record for id.
func (s *Store) Get(id string) (domain.EnrichedRecord, bool) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return domain.EnrichedRecord{}, false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return *entry.rec, true
}

// Snapshot copies every record out of the store. Meant for consumers
// reading after the pipeline has drained.
func (s *Store) Snapshot() []domain.EnrichedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.EnrichedRecord, 0, len(s.entries))

	for _, entry := range s.entries {
		entry.mu.Lock()
		out = append(out, *entry.rec)
		entry.mu.Unlock()
	}

	return out
}

// Len reports the number of records in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
