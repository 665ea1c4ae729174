package workbench

// Selection tracks the chosen columns per source table. Table order and field
// order follow first selection, which keeps synthesis output deterministic.
type Selection struct {
	order  []string
	fields map[string][]string
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{fields: make(map[string][]string)}
}

// Toggle selects the field if absent, deselects it if present. Deselecting the
// last field of a table removes the table from the selection entirely.
func (s *Selection) Toggle(tableID, field string) {
	chosen, ok := s.fields[tableID]
	if !ok {
		s.order = append(s.order, tableID)
		s.fields[tableID] = []string{field}
		return
	}
	for i, f := range chosen {
		if f == field {
			chosen = append(chosen[:i], chosen[i+1:]...)
			if len(chosen) == 0 {
				delete(s.fields, tableID)
				s.removeTable(tableID)
			} else {
				s.fields[tableID] = chosen
			}
			return
		}
	}
	s.fields[tableID] = append(chosen, field)
}

// Selected reports whether the field is currently chosen.
func (s *Selection) Selected(tableID, field string) bool {
	for _, f := range s.fields[tableID] {
		if f == field {
			return true
		}
	}
	return false
}

// Fields returns the chosen field names for a table, in selection order.
func (s *Selection) Fields(tableID string) []string {
	return append([]string(nil), s.fields[tableID]...)
}

// TableIDs returns the selected table ids, in selection order.
func (s *Selection) TableIDs() []string {
	return append([]string(nil), s.order...)
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool { return len(s.order) == 0 }

// Clear drops every chosen field.
func (s *Selection) Clear() {
	s.order = nil
	s.fields = make(map[string][]string)
}

func (s *Selection) removeTable(tableID string) {
	for i, id := range s.order {
		if id == tableID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
