package workbench

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rendererFixtures(t *testing.T) (*Renderer, VirtualTable) {
	t.Helper()
	store := NewTableStore()
	vt := VirtualTable{
		ID:     "vt1",
		Name:   "Sales",
		Fields: []string{"region", "amount"},
		Data: []Row{
			{"region": String("North"), "amount": Number(1200)},
			{"region": String("South"), "amount": Number(800)},
			{"region": String("East"), "amount": Number(300)},
		},
	}
	require.NoError(t, store.Save(vt))
	return NewRenderer(store, WithRenderCache(nil)), vt
}

func barWidget(sourceID string) DashboardWidget {
	return DashboardWidget{
		ID:           "w1",
		Title:        "Revenue",
		Type:         WidgetBar,
		DataSourceID: sourceID,
		Config:       WidgetConfig{XAxis: "region", YAxis: "amount"},
	}
}

func TestRenderBarChartProducesHTML(t *testing.T) {
	r, vt := rendererFixtures(t)
	view, err := r.Render(barWidget(vt.ID))
	require.NoError(t, err)
	assert.Equal(t, WidgetBar, view.Type)
	assert.Contains(t, view.ChartHTML, "North")
	assert.Empty(t, view.Notice)
}

func TestRenderDanglingSourceShowsNotice(t *testing.T) {
	r, _ := rendererFixtures(t)
	view, err := r.Render(barWidget("deleted_table"))
	require.NoError(t, err)
	assert.Empty(t, view.ChartHTML)
	assert.Equal(t, "No data source", view.Notice)
}

func TestRenderNoticeFollowsLocale(t *testing.T) {
	store := NewTableStore()
	r := NewRenderer(store, WithRendererLocale(LocaleZH))
	view, err := r.Render(barWidget("missing"))
	require.NoError(t, err)
	assert.Equal(t, "暂无数据源", view.Notice)
}

func TestRenderKPISumsValueKey(t *testing.T) {
	r, vt := rendererFixtures(t)
	widget := DashboardWidget{
		ID:           "k1",
		Title:        "Total revenue",
		Type:         WidgetKPI,
		DataSourceID: vt.ID,
		Config:       WidgetConfig{ValueKey: "amount"},
	}
	view, err := r.Render(widget)
	require.NoError(t, err)
	assert.Equal(t, "2.3k", view.KPIValue)
	assert.Equal(t, "amount", view.KPILabel)
}

func TestRenderKPIFallsBackToYAxis(t *testing.T) {
	r, vt := rendererFixtures(t)
	widget := DashboardWidget{
		ID:           "k2",
		Type:         WidgetKPI,
		DataSourceID: vt.ID,
		Config:       WidgetConfig{YAxis: "amount"},
	}
	view, err := r.Render(widget)
	require.NoError(t, err)
	assert.Equal(t, "2.3k", view.KPIValue)
}

func TestRenderTableCapsRows(t *testing.T) {
	store := NewTableStore()
	vt := VirtualTable{ID: "vt1", Name: "Big", Fields: []string{"a", "b"}}
	for i := 0; i < 25; i++ {
		vt.Data = append(vt.Data, Row{"a": Number(float64(i)), "b": String("x")})
	}
	require.NoError(t, store.Save(vt))

	r := NewRenderer(store, WithRenderCache(nil))
	view, err := r.Render(DashboardWidget{
		ID: "w1", Type: WidgetTable, DataSourceID: "vt1",
		Config: WidgetConfig{XAxis: "a", YAxis: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, view.Columns)
	assert.Len(t, view.Rows, tableRowLimit)
	assert.Equal(t, []string{"0", "x"}, view.Rows[0])
}

func TestRenderAICardUsesContentOrPlaceholder(t *testing.T) {
	r, _ := rendererFixtures(t)
	view, err := r.Render(DashboardWidget{
		ID: "ai1", Type: WidgetAICard,
		Config: WidgetConfig{Content: "Sales trend looks strong."},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sales trend looks strong.", view.Content)

	view, err = r.Render(DashboardWidget{ID: "ai2", Type: WidgetAICard})
	require.NoError(t, err)
	assert.Equal(t, "Analyzing data...", view.Content)
}

func TestRendererInvalidateEvictsWidgetCharts(t *testing.T) {
	store := NewTableStore()
	vt := VirtualTable{
		ID:     "vt1",
		Name:   "Sales",
		Fields: []string{"region", "amount"},
		Data:   []Row{{"region": String("North"), "amount": Number(1200)}},
	}
	require.NoError(t, store.Save(vt))

	cache := NewChartCache(time.Minute)
	r := NewRenderer(store, WithRenderCache(cache))

	_, err := r.Render(barWidget(vt.ID))
	require.NoError(t, err)
	require.Len(t, cache.entries, 1)

	r.Invalidate("w1")
	assert.Empty(t, cache.entries)
}

func TestRenderPieLimitsSlices(t *testing.T) {
	store := NewTableStore()
	vt := VirtualTable{ID: "vt1", Name: "Many", Fields: []string{"cat", "n"}}
	for _, cat := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		vt.Data = append(vt.Data, Row{"cat": String(cat), "n": Number(1)})
	}
	require.NoError(t, store.Save(vt))

	r := NewRenderer(store, WithRenderCache(nil))
	view, err := r.Render(DashboardWidget{
		ID: "p1", Type: WidgetPie, DataSourceID: "vt1",
		Config: WidgetConfig{XAxis: "cat", YAxis: "n"},
	})
	require.NoError(t, err)
	assert.NotContains(t, view.ChartHTML, `"name":"f"`)
	assert.True(t, strings.Contains(view.ChartHTML, `"name":"a"`))
}
