package workbench

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptySelection rejects synthesis with no chosen fields.
	ErrEmptySelection = errors.New("workbench: selection is empty")
	// ErrEmptyName rejects synthesis with a blank virtual table name.
	ErrEmptyName = errors.New("workbench: virtual table name is required")
	// ErrAmbiguousNamespace rejects selections where two source tables share a
	// name. Positional namespacing cannot disambiguate them; the product has
	// not specified a rule, so the operation is refused rather than guessed.
	ErrAmbiguousNamespace = errors.New("workbench: selected tables share a name")
)

// Synthesizer builds virtual tables by joining selected columns across source
// tables by row position. Synthesis is pure: identical inputs against the same
// catalog always yield identical rows in identical order.
type Synthesizer struct {
	catalog Catalog
	newID   func() string
	now     func() time.Time
}

// SynthesizerOption customizes id/clock generation, mainly for tests.
type SynthesizerOption func(*Synthesizer)

// WithIDGenerator overrides virtual table id assignment.
func WithIDGenerator(gen func() string) SynthesizerOption {
	return func(s *Synthesizer) { s.newID = gen }
}

// WithClock overrides CreatedAt stamping.
func WithClock(now func() time.Time) SynthesizerOption {
	return func(s *Synthesizer) { s.now = now }
}

// NewSynthesizer builds a synthesizer over the given catalog.
func NewSynthesizer(catalog Catalog, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		catalog: catalog,
		newID:   func() string { return "vt_" + uuid.NewString() },
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize joins the selected columns into one flat virtual table.
//
// Output row i merges source row i from every selected table; tables shorter
// than the longest contribute null values past their own length. With more
// than one source table every output column is namespaced as
// "<tableName>_<fieldName>"; a single-table selection keeps the raw names.
// The result is not persisted; callers hand it to a TableStore.
func (s *Synthesizer) Synthesize(sel *Selection, name string) (VirtualTable, error) {
	if strings.TrimSpace(name) == "" {
		return VirtualTable{}, ErrEmptyName
	}
	if sel == nil || sel.Empty() {
		return VirtualTable{}, ErrEmptySelection
	}

	tableIDs := sel.TableIDs()
	tables := make([]DatabaseTable, 0, len(tableIDs))
	seenNames := make(map[string]struct{}, len(tableIDs))
	maxRows := 0
	for _, id := range tableIDs {
		table, ok := s.catalog.Table(id)
		if !ok {
			return VirtualTable{}, fmt.Errorf("workbench: unknown source table %q", id)
		}
		if _, dup := seenNames[table.Name]; dup {
			return VirtualTable{}, fmt.Errorf("%w: %q", ErrAmbiguousNamespace, table.Name)
		}
		seenNames[table.Name] = struct{}{}
		tables = append(tables, table)
		if len(table.Data) > maxRows {
			maxRows = len(table.Data)
		}
	}

	namespaced := len(tables) > 1
	var fields []string
	for _, table := range tables {
		for _, f := range sel.Fields(table.ID) {
			fields = append(fields, outputField(table.Name, f, namespaced))
		}
	}

	rows := make([]Row, maxRows)
	for i := range rows {
		row := make(Row, len(fields))
		for _, table := range tables {
			for _, f := range sel.Fields(table.ID) {
				key := outputField(table.Name, f, namespaced)
				if i < len(table.Data) {
					if v, ok := table.Data[i][f]; ok {
						row[key] = v
						continue
					}
				}
				row[key] = Null()
			}
		}
		rows[i] = row
	}

	return VirtualTable{
		ID:             s.newID(),
		Name:           strings.TrimSpace(name),
		SourceTableIDs: tableIDs,
		Fields:         fields,
		Data:           rows,
		CreatedAt:      s.now().UTC(),
	}, nil
}

func outputField(tableName, field string, namespaced bool) string {
	if !namespaced {
		return field
	}
	return tableName + "_" + field
}
