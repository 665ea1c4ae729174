package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	workbench "github.com/insightpro/go-workbench/components/workbench"
)

// ImportCSVRequest carries uploaded delimited text.
type ImportCSVRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type importService interface {
	ImportCSV(ctx context.Context, text, name string) (workbench.VirtualTable, error)
}

// ImportCSVCommand turns uploaded text into a stored virtual table.
type ImportCSVCommand struct {
	service   importService
	telemetry Telemetry
}

// NewImportCSVCommand creates a command instance.
func NewImportCSVCommand(service importService, telemetry Telemetry) *ImportCSVCommand {
	return &ImportCSVCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ImportCSVRequest] = (*ImportCSVCommand)(nil)

// Execute delegates to the workbench service.
func (c *ImportCSVCommand) Execute(ctx context.Context, msg ImportCSVRequest) error {
	if c.service == nil {
		return errors.New("import command requires service")
	}
	vt, err := c.service.ImportCSV(ctx, msg.Text, msg.Name)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "workbench.command.table.import", map[string]any{
		"table_id": vt.ID,
		"rows":     len(vt.Data),
	})
	return nil
}
