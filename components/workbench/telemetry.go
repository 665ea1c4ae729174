package workbench

import "context"

// Telemetry records workbench events for observability. Event names are
// dot-scoped under "workbench." (for example "workbench.widget.add") and
// payloads carry the ids of the entities the event touched.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
