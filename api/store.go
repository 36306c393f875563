package api

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"tn-weather/models"
)

// SnapshotStore holds the latest snapshot by city.
// Callers take a sequence number with Issue before fetching; Update keeps only
// the result of the most recently issued fetch.
type SnapshotStore struct {
	data  map[string]models.Snapshot // key is the lower-cased city
	mutex sync.RWMutex
	seq   atomic.Uint64
}

// NewSnapshotStore creates a new in-memory snapshot store
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		data: make(map[string]models.Snapshot),
	}
}

// Issue returns the next sequence number
func (s *SnapshotStore) Issue() uint64 {
	return s.seq.Add(1)
}

// Update stores snap unless a snapshot issued later is already stored.
// It reports whether snap was kept.
func (s *SnapshotStore) Update(snap models.Snapshot) bool {
	key := cityKey(snap.City)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if existing, ok := s.data[key]; ok && existing.Seq > snap.Seq {
		return false
	}
	s.data[key] = snap
	return true
}

// Get retrieves the latest snapshot for a city
func (s *SnapshotStore) Get(city string) (models.Snapshot, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	snap, ok := s.data[cityKey(city)]
	return snap, ok
}

// Cities returns the cities that have a stored snapshot, sorted
func (s *SnapshotStore) Cities() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	cities := make([]string, 0, len(s.data))
	for _, snap := range s.data {
		cities = append(cities, snap.City)
	}
	sort.Strings(cities)
	return cities
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
