package workbench

// WidgetDefinition describes a widget variant and the schema its
// configuration must satisfy.
type WidgetDefinition struct {
	Type          WidgetType        `json:"type" yaml:"type"`
	Name          string            `json:"name" yaml:"name"`
	NameLocalized map[string]string `json:"name_localized,omitempty" yaml:"name_localized,omitempty"`
	Description   string            `json:"description,omitempty" yaml:"description,omitempty"`
	Schema        map[string]any    `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// NameForLocale returns the localized display name with fallback.
func (def WidgetDefinition) NameForLocale(locale string) string {
	for _, candidate := range localeCandidates(locale) {
		if value, ok := def.NameLocalized[candidate]; ok && value != "" {
			return value
		}
	}
	return def.Name
}

const hexColorPattern = "^#[0-9a-fA-F]{6}$"

func chartSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x_axis":    map[string]any{"type": "string"},
			"y_axis":    map[string]any{"type": "string"},
			"value_key": map[string]any{"type": "string"},
			"color":     map[string]any{"type": "string", "pattern": hexColorPattern},
		},
	}
}

// DefaultWidgetDefinitions returns the built-in widget variants.
func DefaultWidgetDefinitions() []WidgetDefinition {
	return []WidgetDefinition{
		{
			Type:          WidgetBar,
			Name:          "Bar Chart",
			NameLocalized: map[string]string{LocaleZH: "柱状图"},
			Description:   "Compares values across categories.",
			Schema:        chartSchema(),
		},
		{
			Type:          WidgetLine,
			Name:          "Line Chart",
			NameLocalized: map[string]string{LocaleZH: "折线图"},
			Description:   "Plots a value trend over an ordered axis.",
			Schema:        chartSchema(),
		},
		{
			Type:          WidgetPie,
			Name:          "Pie Chart",
			NameLocalized: map[string]string{LocaleZH: "饼图"},
			Description:   "Shows proportional composition.",
			Schema:        chartSchema(),
		},
		{
			Type:          WidgetTable,
			Name:          "Data Table",
			NameLocalized: map[string]string{LocaleZH: "数据表"},
			Description:   "Lists raw rows for two chosen columns.",
			Schema:        chartSchema(),
		},
		{
			Type:          WidgetKPI,
			Name:          "Indicator",
			NameLocalized: map[string]string{LocaleZH: "指标卡"},
			Description:   "Aggregates the value field into a single number.",
			Schema:        chartSchema(),
		},
		{
			Type:          WidgetAICard,
			Name:          "Insight Card",
			NameLocalized: map[string]string{LocaleZH: "洞察卡片"},
			Description:   "Holds accepted AI analysis text.",
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"content": map[string]any{"type": "string"},
					"color":   map[string]any{"type": "string", "pattern": hexColorPattern},
				},
			},
		},
	}
}

// DefinitionFor looks up the built-in definition for a widget type.
func DefinitionFor(typ WidgetType) (WidgetDefinition, bool) {
	for _, def := range DefaultWidgetDefinitions() {
		if def.Type == typ {
			return def, true
		}
	}
	return WidgetDefinition{}, false
}
