package workbench

import (
	"context"
	"time"
)

// FieldType enumerates the scalar column types exposed by source tables.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldDate    FieldType = "date"
	FieldBoolean FieldType = "boolean"
)

// TableField describes a single column of a source table.
type TableField struct {
	Name string    `json:"name" yaml:"name"`
	Type FieldType `json:"type" yaml:"type"`
}

// DatabaseTable is a fixed source fixture. Instances are immutable after load;
// consumers receive copies and never mutate the catalog's backing data.
type DatabaseTable struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Fields []TableField `json:"fields"`
	Data   []Row        `json:"data"`
}

// ManualUploadSourceID marks virtual tables created from uploaded delimited
// text instead of a catalog selection.
const ManualUploadSourceID = "manual_upload"

// VirtualTable is a derived, denormalized row set built by selecting and
// merging columns from one or more source tables (or an upload).
type VirtualTable struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	SourceTableIDs []string  `json:"source_table_ids" yaml:"source_table_ids"`
	Fields         []string  `json:"fields" yaml:"fields"`
	Data           []Row     `json:"data" yaml:"data"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
	System         bool      `json:"system,omitempty" yaml:"system,omitempty"`
}

// Clone returns a deep copy so callers can never reach the stored rows.
func (vt VirtualTable) Clone() VirtualTable {
	out := vt
	out.SourceTableIDs = append([]string(nil), vt.SourceTableIDs...)
	out.Fields = append([]string(nil), vt.Fields...)
	out.Data = CloneRows(vt.Data)
	return out
}

// WidgetType enumerates the chart/metric/text variants a widget can render.
type WidgetType string

const (
	WidgetBar    WidgetType = "BAR"
	WidgetLine   WidgetType = "LINE"
	WidgetPie    WidgetType = "PIE"
	WidgetTable  WidgetType = "TABLE"
	WidgetKPI    WidgetType = "KPI"
	WidgetAICard WidgetType = "AI_CARD"
)

// WidgetConfig carries the variant-dependent rendering options. AI cards use
// Content; chart variants use the axis/color fields.
type WidgetConfig struct {
	XAxis    string `json:"x_axis,omitempty" yaml:"x_axis,omitempty"`
	YAxis    string `json:"y_axis,omitempty" yaml:"y_axis,omitempty"`
	ValueKey string `json:"value_key,omitempty" yaml:"value_key,omitempty"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
	Content  string `json:"content,omitempty" yaml:"content,omitempty"`
}

// WidgetLayout positions a widget on the dashboard grid in integer cells.
type WidgetLayout struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// DashboardWidget is a single chart/metric/text unit placed on a dashboard.
// DataSourceID references a VirtualTable and may dangle after a table delete;
// widgets then render with empty data rather than being removed.
type DashboardWidget struct {
	ID           string       `json:"id" yaml:"id"`
	Title        string       `json:"title" yaml:"title"`
	Type         WidgetType   `json:"type" yaml:"type"`
	DataSourceID string       `json:"data_source_id,omitempty" yaml:"data_source_id,omitempty"`
	Config       WidgetConfig `json:"config" yaml:"config"`
	Layout       WidgetLayout `json:"layout" yaml:"layout"`
}

// Clone returns a copy of the widget.
func (w DashboardWidget) Clone() DashboardWidget { return w }

// Dashboard is a named canvas of widgets with independent grid layouts.
type Dashboard struct {
	ID      string            `json:"id" yaml:"id"`
	Name    string            `json:"name" yaml:"name"`
	Widgets []DashboardWidget `json:"widgets" yaml:"widgets"`
	System  bool              `json:"system,omitempty" yaml:"system,omitempty"`
}

// Clone deep-copies the dashboard widget list.
func (d Dashboard) Clone() Dashboard {
	out := d
	out.Widgets = make([]DashboardWidget, len(d.Widgets))
	copy(out.Widgets, d.Widgets)
	return out
}

// Catalog resolves source tables for synthesis and previews.
type Catalog interface {
	Table(id string) (DatabaseTable, bool)
	Tables() []DatabaseTable
}

// Translator exposes locale-aware translation, compatible with external i18n
// engines. The built-in string tables satisfy the common cases.
type Translator interface {
	Translate(ctx context.Context, key, locale string) (string, error)
}

// DashboardEvent describes changes that transports might care about.
type DashboardEvent struct {
	DashboardID string          `json:"dashboard_id"`
	Widget      DashboardWidget `json:"widget"`
	Reason      string          `json:"reason"`
}

// RefreshHook notifies transports (REST/WebSocket) about widget changes.
type RefreshHook interface {
	WidgetUpdated(ctx context.Context, event DashboardEvent) error
}
