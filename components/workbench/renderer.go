package workbench

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	defaultChartHeight = "360px"
	pieSliceLimit      = 5
	tableRowLimit      = 10
)

var sharedChartCache = NewChartCache(5 * time.Minute)

// WidgetView is the render result handed to templates. Chart variants carry
// HTML; table/KPI/AI variants carry structured payloads instead.
type WidgetView struct {
	WidgetID  string     `json:"widget_id"`
	Title     string     `json:"title"`
	Type      WidgetType `json:"type"`
	ChartHTML string     `json:"chart_html,omitempty"`
	Columns   []string   `json:"columns,omitempty"`
	Rows      [][]string `json:"rows,omitempty"`
	KPIValue  string     `json:"kpi_value,omitempty"`
	KPILabel  string     `json:"kpi_label,omitempty"`
	Content   string     `json:"content,omitempty"`
	Notice    string     `json:"notice,omitempty"`
}

// Renderer turns widgets into render-ready views against the table store.
// A widget whose data source was deleted renders as empty, never as an error.
type Renderer struct {
	tables *TableStore
	cache  RenderCache
	locale string
}

// RendererOption customizes renderer behavior.
type RendererOption func(*Renderer)

// WithRenderCache injects a render cache.
func WithRenderCache(cache RenderCache) RendererOption {
	return func(r *Renderer) { r.cache = cache }
}

// WithRendererLocale sets the locale for notices and labels.
func WithRendererLocale(locale string) RendererOption {
	return func(r *Renderer) { r.locale = locale }
}

// NewRenderer builds a renderer over the table store.
func NewRenderer(tables *TableStore, options ...RendererOption) *Renderer {
	r := &Renderer{
		tables: tables,
		cache:  sharedChartCache,
		locale: LocaleEN,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Invalidate evicts the widget's cached chart renders so the next Render
// rebuilds them. Transports call this after a config edit or removal.
func (r *Renderer) Invalidate(widgetID string) {
	if r.cache != nil {
		r.cache.Invalidate(widgetID)
	}
}

// Render resolves the widget's data source and produces its view.
func (r *Renderer) Render(widget DashboardWidget) (WidgetView, error) {
	view := WidgetView{
		WidgetID: widget.ID,
		Title:    widget.Title,
		Type:     widget.Type,
	}

	if widget.Type == WidgetAICard {
		view.Content = widget.Config.Content
		if view.Content == "" {
			view.Content = T(r.locale, "workbench.analyzing")
		}
		return view, nil
	}

	vt, ok := r.resolve(widget.DataSourceID)
	if (!ok || len(vt.Data) == 0) && widget.Type != WidgetKPI {
		view.Notice = T(r.locale, "workbench.no_data_source")
		return view, nil
	}

	switch widget.Type {
	case WidgetBar, WidgetLine, WidgetPie:
		html, err := r.renderChart(widget, vt)
		if err != nil {
			return WidgetView{}, err
		}
		view.ChartHTML = html
	case WidgetKPI:
		view.KPIValue, view.KPILabel = r.renderKPI(widget, vt)
	case WidgetTable:
		view.Columns, view.Rows = renderTable(widget, vt)
	default:
		return WidgetView{}, fmt.Errorf("workbench: unsupported widget type %s", widget.Type)
	}
	return view, nil
}

func (r *Renderer) resolve(dataSourceID string) (VirtualTable, bool) {
	if dataSourceID == "" || r.tables == nil {
		return VirtualTable{}, false
	}
	return r.tables.Get(dataSourceID)
}

func (r *Renderer) renderChart(widget DashboardWidget, vt VirtualTable) (string, error) {
	renderFn := func() (string, error) {
		switch widget.Type {
		case WidgetBar:
			return renderBarChart(widget, vt)
		case WidgetLine:
			return renderLineChart(widget, vt)
		case WidgetPie:
			return renderPieChart(widget, vt)
		default:
			return "", fmt.Errorf("workbench: unsupported chart type %s", widget.Type)
		}
	}
	if r.cache == nil {
		return renderFn()
	}
	// Key starts with the widget id so Invalidate can evict by prefix.
	key := fmt.Sprintf("%s:%s:%d:%s", widget.ID, vt.ID, len(vt.Data), configHash(widget.Config))
	return r.cache.GetOrRender(key, renderFn)
}

func (r *Renderer) renderKPI(widget DashboardWidget, vt VirtualTable) (value, label string) {
	key := widget.Config.ValueKey
	if key == "" {
		key = widget.Config.YAxis
	}
	total := 0.0
	for _, row := range vt.Data {
		total += row[key].Float()
	}
	if total > 1000 {
		value = strconv.FormatFloat(total/1000, 'f', 1, 64) + "k"
	} else {
		value = strconv.FormatFloat(total, 'f', 0, 64)
	}
	label = key
	if label == "" {
		label = T(r.locale, "workbench.total")
	}
	return value, label
}

func renderTable(widget DashboardWidget, vt VirtualTable) ([]string, [][]string) {
	columns := []string{widget.Config.XAxis, widget.Config.YAxis}
	rows := vt.Data
	if len(rows) > tableRowLimit {
		rows = rows[:tableRowLimit]
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = []string{row[columns[0]].Display(), row[columns[1]].Display()}
	}
	return columns, out
}

func renderBarChart(widget DashboardWidget, vt VirtualTable) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalChartOptions(widget.Title)...)
	bar.SetXAxis(axisLabels(widget, vt))
	bar.AddSeries(widget.Config.YAxis, toBarData(widget, vt))
	return renderChartHTML(bar)
}

func renderLineChart(widget DashboardWidget, vt VirtualTable) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(globalChartOptions(widget.Title)...)
	line.SetXAxis(axisLabels(widget, vt))
	line.AddSeries(widget.Config.YAxis, toLineData(widget, vt))
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChartHTML(line)
}

func renderPieChart(widget DashboardWidget, vt VirtualTable) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(globalChartOptions(widget.Title)...)
	rows := vt.Data
	if len(rows) > pieSliceLimit {
		rows = rows[:pieSliceLimit]
	}
	data := make([]opts.PieData, len(rows))
	for i, row := range rows {
		name := row[widget.Config.XAxis].Display()
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{Name: name, Value: row[widget.Config.YAxis].Float()}
	}
	pie.AddSeries(widget.Config.YAxis, data)
	return renderChartHTML(pie)
}

func renderChartHTML(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func globalChartOptions(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: defaultChartHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func axisLabels(widget DashboardWidget, vt VirtualTable) []string {
	labels := make([]string, len(vt.Data))
	for i, row := range vt.Data {
		labels[i] = row[widget.Config.XAxis].Display()
	}
	return labels
}

func toBarData(widget DashboardWidget, vt VirtualTable) []opts.BarData {
	data := make([]opts.BarData, len(vt.Data))
	for i, row := range vt.Data {
		data[i] = opts.BarData{Value: row[widget.Config.YAxis].Float()}
	}
	return data
}

func toLineData(widget DashboardWidget, vt VirtualTable) []opts.LineData {
	data := make([]opts.LineData, len(vt.Data))
	for i, row := range vt.Data {
		data[i] = opts.LineData{Value: row[widget.Config.YAxis].Float()}
	}
	return data
}
