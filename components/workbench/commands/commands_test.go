package commands

import (
	"context"
	"errors"
	"testing"

	workbench "github.com/insightpro/go-workbench/components/workbench"
)

type stubService struct {
	addCalls        int
	updateCalls     int
	removeCalls     int
	synthesizeCalls int
	importCalls     int
	acceptCalls     int

	lastSelection *workbench.Selection
	lastName      string
	failWith      error
}

func (s *stubService) AddWidget(_ context.Context, dashboardID string, typ workbench.WidgetType) (workbench.DashboardWidget, error) {
	s.addCalls++
	if s.failWith != nil {
		return workbench.DashboardWidget{}, s.failWith
	}
	return workbench.DashboardWidget{ID: "w1", Type: typ}, nil
}

func (s *stubService) UpdateWidget(context.Context, string, string, workbench.WidgetPatch) error {
	s.updateCalls++
	return s.failWith
}

func (s *stubService) RemoveWidget(context.Context, string, string) error {
	s.removeCalls++
	return s.failWith
}

func (s *stubService) SynthesizeTable(_ context.Context, sel *workbench.Selection, name string) (workbench.VirtualTable, error) {
	s.synthesizeCalls++
	s.lastSelection = sel
	s.lastName = name
	if s.failWith != nil {
		return workbench.VirtualTable{}, s.failWith
	}
	return workbench.VirtualTable{ID: "vt1", Name: name, SourceTableIDs: sel.TableIDs()}, nil
}

func (s *stubService) ImportCSV(_ context.Context, _, name string) (workbench.VirtualTable, error) {
	s.importCalls++
	if s.failWith != nil {
		return workbench.VirtualTable{}, s.failWith
	}
	return workbench.VirtualTable{ID: "vt1", Name: name}, nil
}

func (s *stubService) AcceptInsight(_ context.Context, _, _, _ string) (workbench.DashboardWidget, error) {
	s.acceptCalls++
	if s.failWith != nil {
		return workbench.DashboardWidget{}, s.failWith
	}
	return workbench.DashboardWidget{ID: "ai_1", Type: workbench.WidgetAICard}, nil
}

type stubTelemetry struct {
	calls  int
	events []string
}

func (t *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	t.calls++
	t.events = append(t.events, event)
}

func TestAddWidgetCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewAddWidgetCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), AddWidgetRequest{DashboardID: "d2", Type: workbench.WidgetBar}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.addCalls != 1 {
		t.Fatalf("expected add call")
	}
	if telemetry.calls == 0 {
		t.Fatalf("expected telemetry event")
	}
}

func TestAddWidgetCommandPropagatesError(t *testing.T) {
	service := &stubService{failWith: workbench.ErrSystemOwned}
	telemetry := &stubTelemetry{}
	cmd := NewAddWidgetCommand(service, telemetry)
	err := cmd.Execute(context.Background(), AddWidgetRequest{DashboardID: "d1", Type: workbench.WidgetBar})
	if !errors.Is(err, workbench.ErrSystemOwned) {
		t.Fatalf("expected ErrSystemOwned, got %v", err)
	}
	if telemetry.calls != 0 {
		t.Fatalf("failed command must not record telemetry")
	}
}

func TestUpdateWidgetCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewUpdateWidgetCommand(service, nil)
	title := "Revenue"
	req := UpdateWidgetRequest{
		DashboardID: "d2",
		WidgetID:    "w1",
		Patch:       workbench.WidgetPatch{Title: &title},
	}
	if err := cmd.Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.updateCalls != 1 {
		t.Fatalf("expected update call")
	}
}

func TestRemoveWidgetCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewRemoveWidgetCommand(service, nil)
	if err := cmd.Execute(context.Background(), RemoveWidgetRequest{DashboardID: "d2", WidgetID: "w1"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.removeCalls != 1 {
		t.Fatalf("expected remove call")
	}
}

func TestSynthesizeCommandBuildsSelectionInOrder(t *testing.T) {
	service := &stubService{}
	cmd := NewSynthesizeCommand(service, nil)
	req := SynthesizeRequest{
		Name: "Joined",
		Selected: []Selected{
			{TableID: "t1", Fields: []string{"customer_name", "amount"}},
			{TableID: "t2", Fields: []string{"spend"}},
		},
	}
	if err := cmd.Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.synthesizeCalls != 1 {
		t.Fatalf("expected synthesize call")
	}
	ids := service.lastSelection.TableIDs()
	if len(ids) != 2 || ids[0] != "t1" || ids[1] != "t2" {
		t.Fatalf("selection order lost: %v", ids)
	}
	fields := service.lastSelection.Fields("t1")
	if len(fields) != 2 || fields[0] != "customer_name" {
		t.Fatalf("field order lost: %v", fields)
	}
	if service.lastName != "Joined" {
		t.Fatalf("name lost: %q", service.lastName)
	}
}

func TestImportCSVCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewImportCSVCommand(service, nil)
	if err := cmd.Execute(context.Background(), ImportCSVRequest{Name: "Upload", Text: "a,b\n1,2\n"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.importCalls != 1 {
		t.Fatalf("expected import call")
	}
}

func TestAcceptInsightCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewAcceptInsightCommand(service, telemetry)
	req := AcceptInsightRequest{DashboardID: "d2", SourceTitle: "Revenue", Content: "Trend up."}
	if err := cmd.Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.acceptCalls != 1 {
		t.Fatalf("expected accept call")
	}
}

func TestCommandsRequireService(t *testing.T) {
	if err := NewAddWidgetCommand(nil, nil).Execute(context.Background(), AddWidgetRequest{}); err == nil {
		t.Fatal("expected error for nil service")
	}
	if err := NewSynthesizeCommand(nil, nil).Execute(context.Background(), SynthesizeRequest{}); err == nil {
		t.Fatal("expected error for nil service")
	}
}
