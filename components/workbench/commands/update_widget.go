package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	workbench "github.com/insightpro/go-workbench/components/workbench"
)

// UpdateWidgetRequest carries a partial widget update.
type UpdateWidgetRequest struct {
	DashboardID string                `json:"dashboard_id"`
	WidgetID    string                `json:"widget_id"`
	Patch       workbench.WidgetPatch `json:"patch"`
}

type updateWidgetService interface {
	UpdateWidget(ctx context.Context, dashboardID, widgetID string, patch workbench.WidgetPatch) error
}

// UpdateWidgetCommand applies partial widget updates through the service.
type UpdateWidgetCommand struct {
	service   updateWidgetService
	telemetry Telemetry
}

// NewUpdateWidgetCommand creates a command instance.
func NewUpdateWidgetCommand(service updateWidgetService, telemetry Telemetry) *UpdateWidgetCommand {
	return &UpdateWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateWidgetRequest] = (*UpdateWidgetCommand)(nil)

// Execute delegates to the workbench service.
func (c *UpdateWidgetCommand) Execute(ctx context.Context, msg UpdateWidgetRequest) error {
	if c.service == nil {
		return errors.New("update widget command requires service")
	}
	if err := c.service.UpdateWidget(ctx, msg.DashboardID, msg.WidgetID, msg.Patch); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "workbench.command.widget.update", map[string]any{
		"dashboard_id": msg.DashboardID,
		"widget_id":    msg.WidgetID,
	})
	return nil
}
