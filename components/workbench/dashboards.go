package workbench

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrDashboardNotFound reports a missing dashboard id.
	ErrDashboardNotFound = errors.New("workbench: dashboard not found")
	// ErrLastDashboard blocks deleting the only remaining dashboard.
	ErrLastDashboard = errors.New("workbench: cannot delete the last dashboard")
)

// DashboardStore holds every canvas and its widgets. All widget mutations
// replace the whole widget list atomically so readers never observe a
// partially applied operation.
type DashboardStore struct {
	mu         sync.RWMutex
	order      []string
	dashboards map[string]Dashboard
	seq        int
}

// NewDashboardStore seeds the store with the system-owned default canvas,
// which is also the default view.
func NewDashboardStore() *DashboardStore {
	s := &DashboardStore{dashboards: make(map[string]Dashboard)}
	def := Dashboard{ID: "d1", Name: "Executive Overview", System: true}
	s.order = append(s.order, def.ID)
	s.dashboards[def.ID] = def
	return s
}

// DefaultID returns the id of the default (first) dashboard.
func (s *DashboardStore) DefaultID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order[0]
}

// Create adds a new empty dashboard with an incrementing default name.
func (s *DashboardStore) Create() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	d := Dashboard{
		ID:   "d_" + uuid.NewString(),
		Name: fmt.Sprintf("Dashboard %d", s.seq),
	}
	s.order = append(s.order, d.ID)
	s.dashboards[d.ID] = d
	return d.Clone()
}

// Get returns a copy of the dashboard with the given id.
func (s *DashboardStore) Get(id string) (Dashboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dashboards[id]
	if !ok {
		return Dashboard{}, false
	}
	return d.Clone(), true
}

// List returns copies of every dashboard in creation order.
func (s *DashboardStore) List() []Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Dashboard, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.dashboards[id].Clone())
	}
	return out
}

// Rename updates a dashboard's display name.
func (s *DashboardStore) Rename(id, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dashboards[id]
	if !ok {
		return ErrDashboardNotFound
	}
	if d.System {
		return ErrSystemOwned
	}
	d.Name = strings.TrimSpace(name)
	s.dashboards[id] = d
	return nil
}

// Delete removes a dashboard. The system-owned canvas and the last remaining
// dashboard are protected.
func (s *DashboardStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dashboards[id]
	if !ok {
		return ErrDashboardNotFound
	}
	if d.System {
		return ErrSystemOwned
	}
	if len(s.order) == 1 {
		return ErrLastDashboard
	}
	delete(s.dashboards, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// replace swaps the stored widget list in one step. The caller holds no lock;
// mutate computes the replacement from a private copy.
func (s *DashboardStore) replace(id string, mutate func(Dashboard) Dashboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dashboards[id]
	if !ok {
		return ErrDashboardNotFound
	}
	if d.System {
		return ErrSystemOwned
	}
	s.dashboards[id] = mutate(d.Clone())
	return nil
}
