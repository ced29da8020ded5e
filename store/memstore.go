package store

import (
	"fmt"
	"sort"
	"sync"

	"p9e.in/soltrack/models"
)

// MemStore is an in-memory InstallationStore used by tests. Records
// are deep-copied on the way in and out so callers can never mutate
// stored state without going through Save.
type MemStore struct {
	mu      sync.RWMutex
	records map[int]models.Installation
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[int]models.Installation)}
}

func copyInstallation(in models.Installation) models.Installation {
	out := in
	out.Events = append(models.EventList{}, in.Events...)
	out.Documents = append(models.DocumentList{}, in.Documents...)
	out.Inverters = append([]models.Inverter{}, in.Inverters...)
	out.Panels = append([]models.Panel{}, in.Panels...)
	return out
}

func (s *MemStore) List() ([]models.Installation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]models.Installation, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyInstallation(s.records[id]))
	}
	return out, nil
}

func (s *MemStore) Get(id int) (*models.Installation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyInstallation(rec)
	return &out, nil
}

func (s *MemStore) Create(inst *models.Installation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for id := range s.records {
		if id > maxID {
			maxID = id
		}
	}
	inst.ID = maxID + 1
	inst.InstallationID = fmt.Sprintf("INST-%03d", inst.ID)
	s.records[inst.ID] = copyInstallation(*inst)
	return nil
}

func (s *MemStore) Save(inst *models.Installation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[inst.ID]; !ok {
		return ErrNotFound
	}
	s.records[inst.ID] = copyInstallation(*inst)
	return nil
}

func (s *MemStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}
