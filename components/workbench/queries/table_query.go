package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	workbench "github.com/insightpro/go-workbench/components/workbench"
)

type tableService interface {
	Table(id string) (workbench.VirtualTable, bool)
	Tables() []workbench.VirtualTable
	SourceTables() []workbench.DatabaseTable
}

// TableQueryInput selects one virtual table, or all when ID is empty.
// IncludeSources additionally returns the catalog fixtures.
type TableQueryInput struct {
	ID             string `json:"id"`
	IncludeSources bool   `json:"include_sources"`
}

// TableQueryResult carries the resolved tables.
type TableQueryResult struct {
	Tables  []workbench.VirtualTable  `json:"tables"`
	Sources []workbench.DatabaseTable `json:"sources,omitempty"`
}

// TableQuery executes read-only table lookups.
type TableQuery struct {
	service tableService
}

// NewTableQuery builds the query.
func NewTableQuery(service tableService) *TableQuery {
	return &TableQuery{service: service}
}

var _ gocommand.Querier[TableQueryInput, TableQueryResult] = (*TableQuery)(nil)

// Query resolves virtual tables (and optionally catalog sources).
func (q *TableQuery) Query(_ context.Context, input TableQueryInput) (TableQueryResult, error) {
	result := TableQueryResult{}
	if input.ID == "" {
		result.Tables = q.service.Tables()
	} else {
		vt, ok := q.service.Table(input.ID)
		if !ok {
			return TableQueryResult{}, workbench.ErrTableNotFound
		}
		result.Tables = []workbench.VirtualTable{vt}
	}
	if input.IncludeSources {
		result.Sources = q.service.SourceTables()
	}
	return result, nil
}
