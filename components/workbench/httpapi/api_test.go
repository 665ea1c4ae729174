package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	workbench "github.com/insightpro/go-workbench/components/workbench"
	"github.com/insightpro/go-workbench/components/workbench/commands"
	"github.com/insightpro/go-workbench/components/workbench/queries"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(_ context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

type stubQuerier[T any, R any] struct {
	result R
	err    error
}

func (s *stubQuerier[T, R]) Query(context.Context, T) (R, error) {
	return s.result, s.err
}

func TestHandleAddWidget(t *testing.T) {
	add := &stubCommander[commands.AddWidgetRequest]{}
	api := &Handlers{AddWidget: add}
	payload := commands.AddWidgetRequest{DashboardID: "d2", Type: workbench.WidgetBar}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/widgets", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleAddWidget(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if add.calls != 1 || add.last.Type != workbench.WidgetBar {
		t.Fatalf("expected add to execute with payload")
	}
}

func TestHandleAddWidgetBadJSON(t *testing.T) {
	api := &Handlers{AddWidget: &stubCommander[commands.AddWidgetRequest]{}}
	req := httptest.NewRequest(http.MethodPost, "/widgets", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	api.HandleAddWidget(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleAddWidgetSystemOwned(t *testing.T) {
	add := &stubCommander[commands.AddWidgetRequest]{err: workbench.ErrSystemOwned}
	api := &Handlers{AddWidget: add}
	buf, _ := json.Marshal(commands.AddWidgetRequest{DashboardID: "d1"})
	req := httptest.NewRequest(http.MethodPost, "/widgets", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleAddWidget(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for system-owned target, got %d", rec.Code)
	}
}

func TestHandleRemoveWidget(t *testing.T) {
	remove := &stubCommander[commands.RemoveWidgetRequest]{}
	api := &Handlers{RemoveWidget: remove}
	req := httptest.NewRequest(http.MethodDelete, "/dashboards/d2/widgets/w1", nil)
	rec := httptest.NewRecorder()
	api.HandleRemoveWidget(rec, req, "d2", "w1")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if remove.last.DashboardID != "d2" || remove.last.WidgetID != "w1" {
		t.Fatalf("expected id propagation, got %#v", remove.last)
	}
}

func TestHandleSynthesizeValidationError(t *testing.T) {
	syn := &stubCommander[commands.SynthesizeRequest]{err: workbench.ErrEmptySelection}
	api := &Handlers{Synthesize: syn}
	buf, _ := json.Marshal(commands.SynthesizeRequest{Name: "x"})
	req := httptest.NewRequest(http.MethodPost, "/tables/synthesize", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleSynthesize(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestHandleImportCSV(t *testing.T) {
	imp := &stubCommander[commands.ImportCSVRequest]{}
	api := &Handlers{ImportCSV: imp}
	buf, _ := json.Marshal(commands.ImportCSVRequest{Name: "Upload", Text: "a,b\n1,2\n"})
	req := httptest.NewRequest(http.MethodPost, "/tables/import", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleImportCSV(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if imp.calls != 1 {
		t.Fatalf("expected import to execute")
	}
}

func TestHandleListDashboards(t *testing.T) {
	q := &stubQuerier[queries.DashboardQueryInput, queries.DashboardQueryResult]{
		result: queries.DashboardQueryResult{
			Dashboards: []workbench.Dashboard{{ID: "d1", Name: "Executive Overview"}},
		},
	}
	api := &Handlers{Dashboards: q}
	req := httptest.NewRequest(http.MethodGet, "/dashboards", nil)
	rec := httptest.NewRecorder()
	api.HandleListDashboards(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var result queries.DashboardQueryResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.Dashboards) != 1 || result.Dashboards[0].ID != "d1" {
		t.Fatalf("unexpected body %#v", result)
	}
}

func TestHandleListTablesNotFound(t *testing.T) {
	q := &stubQuerier[queries.TableQueryInput, queries.TableQueryResult]{
		err: workbench.ErrTableNotFound,
	}
	api := &Handlers{Tables: q}
	req := httptest.NewRequest(http.MethodGet, "/tables?id=missing", nil)
	rec := httptest.NewRecorder()
	api.HandleListTables(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
