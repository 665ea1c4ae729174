package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	workbench "github.com/insightpro/go-workbench/components/workbench"
)

// AddWidgetRequest carries the inputs for placing a new widget on a canvas.
type AddWidgetRequest struct {
	DashboardID string               `json:"dashboard_id"`
	Type        workbench.WidgetType `json:"type"`
}

type addWidgetService interface {
	AddWidget(ctx context.Context, dashboardID string, typ workbench.WidgetType) (workbench.DashboardWidget, error)
}

// AddWidgetCommand wraps Service.AddWidget so transports can place widgets
// without linking directly against the service.
type AddWidgetCommand struct {
	service   addWidgetService
	telemetry Telemetry
}

// NewAddWidgetCommand creates a command instance.
func NewAddWidgetCommand(service addWidgetService, telemetry Telemetry) *AddWidgetCommand {
	return &AddWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddWidgetRequest] = (*AddWidgetCommand)(nil)

// Execute delegates to the workbench service.
func (c *AddWidgetCommand) Execute(ctx context.Context, msg AddWidgetRequest) error {
	if c.service == nil {
		return errors.New("add widget command requires service")
	}
	widget, err := c.service.AddWidget(ctx, msg.DashboardID, msg.Type)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "workbench.command.widget.add", map[string]any{
		"dashboard_id": msg.DashboardID,
		"widget_id":    widget.ID,
		"type":         string(msg.Type),
	})
	return nil
}
