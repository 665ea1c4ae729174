package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	workbench "github.com/insightpro/go-workbench/components/workbench"
)

type dashboardService interface {
	Dashboard(id string) (workbench.Dashboard, bool)
	Dashboards() []workbench.Dashboard
}

// DashboardQueryInput selects one dashboard, or all when ID is empty.
type DashboardQueryInput struct {
	ID string `json:"id"`
}

// DashboardQueryResult carries the resolved dashboards.
type DashboardQueryResult struct {
	Dashboards []workbench.Dashboard `json:"dashboards"`
}

// DashboardQuery executes read-only dashboard lookups.
type DashboardQuery struct {
	service dashboardService
}

// NewDashboardQuery builds the query.
func NewDashboardQuery(service dashboardService) *DashboardQuery {
	return &DashboardQuery{service: service}
}

var _ gocommand.Querier[DashboardQueryInput, DashboardQueryResult] = (*DashboardQuery)(nil)

// Query resolves dashboards for transports.
func (q *DashboardQuery) Query(_ context.Context, input DashboardQueryInput) (DashboardQueryResult, error) {
	if input.ID == "" {
		return DashboardQueryResult{Dashboards: q.service.Dashboards()}, nil
	}
	d, ok := q.service.Dashboard(input.ID)
	if !ok {
		return DashboardQueryResult{}, workbench.ErrDashboardNotFound
	}
	return DashboardQueryResult{Dashboards: []workbench.Dashboard{d}}, nil
}
