package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	workbench "github.com/insightpro/go-workbench/components/workbench"
)

// AcceptInsightRequest saves generated analysis text as a dashboard card.
type AcceptInsightRequest struct {
	DashboardID string `json:"dashboard_id"`
	SourceTitle string `json:"source_title"`
	Content     string `json:"content"`
}

type acceptInsightService interface {
	AcceptInsight(ctx context.Context, dashboardID, sourceTitle, content string) (workbench.DashboardWidget, error)
}

// AcceptInsightCommand persists an accepted AI analysis onto a canvas.
type AcceptInsightCommand struct {
	service   acceptInsightService
	telemetry Telemetry
}

// NewAcceptInsightCommand creates a command instance.
func NewAcceptInsightCommand(service acceptInsightService, telemetry Telemetry) *AcceptInsightCommand {
	return &AcceptInsightCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AcceptInsightRequest] = (*AcceptInsightCommand)(nil)

// Execute delegates to the workbench service.
func (c *AcceptInsightCommand) Execute(ctx context.Context, msg AcceptInsightRequest) error {
	if c.service == nil {
		return errors.New("accept insight command requires service")
	}
	widget, err := c.service.AcceptInsight(ctx, msg.DashboardID, msg.SourceTitle, msg.Content)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "workbench.command.insight.accept", map[string]any{
		"dashboard_id": msg.DashboardID,
		"widget_id":    widget.ID,
	})
	return nil
}
