package workbench

import (
	"strings"

	"github.com/google/uuid"
)

// Default spans per widget variant. KPI tiles are deliberately smaller and
// keep a fixed footprint; AI cards are wide so the text stays readable.
const (
	defaultWidgetW = 4
	defaultWidgetH = 4
	kpiWidgetW     = 3
	kpiWidgetH     = 2
	aiCardW        = 6
	aiCardH        = 4

	defaultAccentColor = "#6366f1"
)

// WidgetSeed carries the data-source defaults applied to new widgets, taken
// from the first two fields of the oldest virtual table (empty when none).
type WidgetSeed struct {
	DataSourceID string
	XField       string
	YField       string
}

// SeedFromTable derives widget defaults from a virtual table.
func SeedFromTable(vt VirtualTable, ok bool) WidgetSeed {
	if !ok {
		return WidgetSeed{}
	}
	seed := WidgetSeed{DataSourceID: vt.ID}
	if len(vt.Fields) > 0 {
		seed.XField = vt.Fields[0]
	}
	if len(vt.Fields) > 1 {
		seed.YField = vt.Fields[1]
	}
	return seed
}

// WidgetPatch describes a partial widget update. Nil fields are left alone;
// Config patches merge key by key so sibling keys survive.
type WidgetPatch struct {
	Title        *string       `json:"title,omitempty"`
	Type         *WidgetType   `json:"type,omitempty"`
	DataSourceID *string       `json:"data_source_id,omitempty"`
	Config       *ConfigPatch  `json:"config,omitempty"`
	Layout       *WidgetLayout `json:"layout,omitempty"`
}

// ConfigPatch updates individual configuration keys.
type ConfigPatch struct {
	XAxis    *string `json:"x_axis,omitempty"`
	YAxis    *string `json:"y_axis,omitempty"`
	ValueKey *string `json:"value_key,omitempty"`
	Color    *string `json:"color,omitempty"`
	Content  *string `json:"content,omitempty"`
}

// AddWidget appends a new widget to the dashboard, stacked below every
// existing widget at x=0. Returns ErrSystemOwned untouched for the protected
// canvas so transports can surface a dismissable notice.
func (s *DashboardStore) AddWidget(dashboardID string, typ WidgetType, seed WidgetSeed) (DashboardWidget, error) {
	widget := newWidget(typ, seed)
	err := s.replace(dashboardID, func(d Dashboard) Dashboard {
		widget.Layout.Y = stackBelow(d.Widgets)
		d.Widgets = append(d.Widgets, widget)
		return d
	})
	if err != nil {
		return DashboardWidget{}, err
	}
	return widget, nil
}

// UpdateWidget shallow-merges the patch into the widget's top-level fields
// and merges Config at the key level.
func (s *DashboardStore) UpdateWidget(dashboardID, widgetID string, patch WidgetPatch) error {
	return s.replace(dashboardID, func(d Dashboard) Dashboard {
		for i, w := range d.Widgets {
			if w.ID != widgetID {
				continue
			}
			d.Widgets[i] = applyPatch(w, patch)
			break
		}
		return d
	})
}

// RemoveWidget filters the widget out of the list; an absent id is a no-op.
func (s *DashboardStore) RemoveWidget(dashboardID, widgetID string) error {
	return s.replace(dashboardID, func(d Dashboard) Dashboard {
		kept := d.Widgets[:0:0]
		for _, w := range d.Widgets {
			if w.ID != widgetID {
				kept = append(kept, w)
			}
		}
		d.Widgets = kept
		return d
	})
}

// AddInsightCard persists an accepted AI analysis as a wide text widget with
// no data source, stacked below existing widgets.
func (s *DashboardStore) AddInsightCard(dashboardID, title, content string) (DashboardWidget, error) {
	widget := DashboardWidget{
		ID:    "ai_" + uuid.NewString(),
		Title: title,
		Type:  WidgetAICard,
		Config: WidgetConfig{
			Content: content,
			Color:   defaultAccentColor,
		},
		Layout: WidgetLayout{W: aiCardW, H: aiCardH},
	}
	err := s.replace(dashboardID, func(d Dashboard) Dashboard {
		widget.Layout.Y = stackBelow(d.Widgets)
		d.Widgets = append(d.Widgets, widget)
		return d
	})
	if err != nil {
		return DashboardWidget{}, err
	}
	return widget, nil
}

func newWidget(typ WidgetType, seed WidgetSeed) DashboardWidget {
	layout := WidgetLayout{W: defaultWidgetW, H: defaultWidgetH}
	if typ == WidgetKPI {
		layout = WidgetLayout{W: kpiWidgetW, H: kpiWidgetH}
	}
	return DashboardWidget{
		ID:           "w_" + uuid.NewString(),
		Title:        defaultTitle(typ),
		Type:         typ,
		DataSourceID: seed.DataSourceID,
		Config: WidgetConfig{
			XAxis:    seed.XField,
			YAxis:    seed.YField,
			ValueKey: seed.YField,
			Color:    defaultAccentColor,
		},
		Layout: layout,
	}
}

func defaultTitle(typ WidgetType) string {
	return "New " + strings.ToLower(string(typ)) + " chart"
}

// stackBelow returns the first free row under every existing widget.
func stackBelow(widgets []DashboardWidget) int {
	maxY := 0
	for _, w := range widgets {
		if bottom := w.Layout.Y + w.Layout.H; bottom > maxY {
			maxY = bottom
		}
	}
	return maxY
}

func applyPatch(w DashboardWidget, patch WidgetPatch) DashboardWidget {
	if patch.Title != nil {
		w.Title = *patch.Title
	}
	if patch.Type != nil {
		w.Type = *patch.Type
	}
	if patch.DataSourceID != nil {
		w.DataSourceID = *patch.DataSourceID
	}
	if patch.Layout != nil {
		w.Layout = *patch.Layout
	}
	if patch.Config != nil {
		if patch.Config.XAxis != nil {
			w.Config.XAxis = *patch.Config.XAxis
		}
		if patch.Config.YAxis != nil {
			w.Config.YAxis = *patch.Config.YAxis
		}
		if patch.Config.ValueKey != nil {
			w.Config.ValueKey = *patch.Config.ValueKey
		}
		if patch.Config.Color != nil {
			w.Config.Color = *patch.Config.Color
		}
		if patch.Config.Content != nil {
			w.Config.Content = *patch.Config.Content
		}
	}
	return w
}
