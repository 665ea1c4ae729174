package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RemoveWidgetRequest identifies the widget to remove.
type RemoveWidgetRequest struct {
	DashboardID string `json:"dashboard_id"`
	WidgetID    string `json:"widget_id"`
}

type removeWidgetService interface {
	RemoveWidget(ctx context.Context, dashboardID, widgetID string) error
}

// RemoveWidgetCommand deletes a widget through the service.
type RemoveWidgetCommand struct {
	service   removeWidgetService
	telemetry Telemetry
}

// NewRemoveWidgetCommand creates a command instance.
func NewRemoveWidgetCommand(service removeWidgetService, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetRequest] = (*RemoveWidgetCommand)(nil)

// Execute delegates to the workbench service.
func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetRequest) error {
	if c.service == nil {
		return errors.New("remove widget command requires service")
	}
	if err := c.service.RemoveWidget(ctx, msg.DashboardID, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "workbench.command.widget.remove", map[string]any{
		"dashboard_id": msg.DashboardID,
		"widget_id":    msg.WidgetID,
	})
	return nil
}
