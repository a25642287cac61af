package store

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory variable store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[string]storedVar // set -> name -> variable
	closed bool
}

type storedVar struct {
	value   string
	updated time.Time
}

// NewMemoryStore creates a new in-memory variable store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]storedVar),
	}
}

// Set implements Store.
func (m *MemoryStore) Set(set, name, value string) error {
	if err := checkName(name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if m.data[set] == nil {
		m.data[set] = make(map[string]storedVar)
	}
	m.data[set][name] = storedVar{value: value, updated: time.Now().UTC()}
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(set, name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", ErrStoreClosed
	}

	v, ok := m.data[set][name]
	if !ok {
		return "", ErrNotFound
	}
	return v.value, nil
}

// List implements Store.
func (m *MemoryStore) List(set string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	vars, ok := m.data[set]
	if !ok {
		return nil, nil
	}

	infos := make([]Info, 0, len(vars))
	for name, v := range vars {
		infos = append(infos, Info{
			Set:     set,
			Name:    name,
			Value:   v.value,
			Updated: v.updated,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(set, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if vars, ok := m.data[set]; ok {
		delete(vars, name)
		if len(vars) == 0 {
			delete(m.data, set)
		}
	}
	return nil
}

// DeleteSet implements Store.
func (m *MemoryStore) DeleteSet(set string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, set)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the total number of variables across all sets.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, vars := range m.data {
		count += len(vars)
	}
	return count
}
