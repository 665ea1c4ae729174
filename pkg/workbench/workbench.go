package workbench

import (
	core "github.com/insightpro/go-workbench/components/workbench"
)

// Service exposes the underlying components/workbench.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Frequently used domain types, re-exported so applications can avoid
// importing the component package directly.
type (
	Dashboard       = core.Dashboard
	DashboardWidget = core.DashboardWidget
	VirtualTable    = core.VirtualTable
	WidgetType      = core.WidgetType
	WidgetPatch     = core.WidgetPatch
	Selection       = core.Selection
	GridGeometry    = core.GridGeometry
	InsightResult   = core.InsightResult
)

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// NewSelection proxies to the internal constructor.
func NewSelection() *Selection {
	return core.NewSelection()
}
