package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	workbench "github.com/insightpro/go-workbench/components/workbench"
)

// SynthesizeRequest carries the field selection for a new virtual table.
// Fields maps source table ids to the chosen field names, in selection order.
type SynthesizeRequest struct {
	Name     string     `json:"name"`
	Selected []Selected `json:"selected"`
}

// Selected names one table's chosen fields.
type Selected struct {
	TableID string   `json:"table_id"`
	Fields  []string `json:"fields"`
}

type synthesizeService interface {
	SynthesizeTable(ctx context.Context, sel *workbench.Selection, name string) (workbench.VirtualTable, error)
}

// SynthesizeCommand builds a virtual table from a wire-friendly selection.
type SynthesizeCommand struct {
	service   synthesizeService
	telemetry Telemetry
}

// NewSynthesizeCommand creates a command instance.
func NewSynthesizeCommand(service synthesizeService, telemetry Telemetry) *SynthesizeCommand {
	return &SynthesizeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SynthesizeRequest] = (*SynthesizeCommand)(nil)

// Execute delegates to the workbench service.
func (c *SynthesizeCommand) Execute(ctx context.Context, msg SynthesizeRequest) error {
	if c.service == nil {
		return errors.New("synthesize command requires service")
	}
	sel := workbench.NewSelection()
	for _, chosen := range msg.Selected {
		for _, field := range chosen.Fields {
			sel.Toggle(chosen.TableID, field)
		}
	}
	vt, err := c.service.SynthesizeTable(ctx, sel, msg.Name)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "workbench.command.table.synthesize", map[string]any{
		"table_id": vt.ID,
		"sources":  len(vt.SourceTableIDs),
	})
	return nil
}
