package workbench

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrSystemOwned marks mutation attempts against protected entities.
	ErrSystemOwned = errors.New("workbench: entity is system-owned")
	// ErrTableNotFound reports a missing virtual table id.
	ErrTableNotFound = errors.New("workbench: virtual table not found")
	// ErrTableInUse blocks deleting a table that is still being displayed.
	ErrTableInUse = errors.New("workbench: virtual table is currently displayed")
)

// TableStore holds the synthesized virtual tables for the process lifetime.
// Reads hand out deep copies; system-owned tables reject every mutation.
type TableStore struct {
	mu     sync.RWMutex
	order  []string
	tables map[string]VirtualTable
}

// NewTableStore returns an empty store.
func NewTableStore() *TableStore {
	return &TableStore{tables: make(map[string]VirtualTable)}
}

// Save persists a synthesized table. Replacing an existing id keeps its slot
// in the listing order; system-owned entries cannot be replaced.
func (s *TableStore) Save(vt VirtualTable) error {
	if vt.ID == "" {
		return fmt.Errorf("workbench: virtual table id is required")
	}
	if strings.TrimSpace(vt.Name) == "" {
		return ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.tables[vt.ID]
	if ok && existing.System {
		return ErrSystemOwned
	}
	if !ok {
		s.order = append(s.order, vt.ID)
	}
	s.tables[vt.ID] = vt.Clone()
	return nil
}

// Get returns a copy of the table with the given id.
func (s *TableStore) Get(id string) (VirtualTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vt, ok := s.tables[id]
	if !ok {
		return VirtualTable{}, false
	}
	return vt.Clone(), true
}

// List returns copies of every table in creation order.
func (s *TableStore) List() []VirtualTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]VirtualTable, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tables[id].Clone())
	}
	return out
}

// First returns the oldest table, used to seed new widget configurations.
func (s *TableStore) First() (VirtualTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.order) == 0 {
		return VirtualTable{}, false
	}
	return s.tables[s.order[0]].Clone(), true
}

// Rename updates a table's display name.
func (s *TableStore) Rename(id, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	vt, ok := s.tables[id]
	if !ok {
		return ErrTableNotFound
	}
	if vt.System {
		return ErrSystemOwned
	}
	vt.Name = strings.TrimSpace(name)
	s.tables[id] = vt
	return nil
}

// Delete removes a table. System-owned tables are protected, and callers must
// clear any active preview reference before deleting (widgets referencing the
// table are deliberately left dangling and render empty).
func (s *TableStore) Delete(id string, displayed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vt, ok := s.tables[id]
	if !ok {
		return ErrTableNotFound
	}
	if vt.System {
		return ErrSystemOwned
	}
	if displayed {
		return ErrTableInUse
	}
	delete(s.tables, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
