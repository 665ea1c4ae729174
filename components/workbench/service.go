package workbench

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errMissingInsightClient = errors.New("workbench: insight client not configured")

// Options configures the workbench Service. Every collaborator is provided via
// interface so applications can swap implementations without importing
// internal packages.
type Options struct {
	Catalog         Catalog
	Tables          *TableStore
	Dashboards      *DashboardStore
	InsightClient   InsightClient
	ConfigValidator ConfigValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	Translator      Translator
	Locale          string
	InsightTimeout  time.Duration
}

// Service orchestrates the whole workbench: source catalog, virtual tables,
// dashboards and their widgets, plus the AI insight flow. It also tracks the
// two pieces of view state the stores do not own: the active dashboard and the
// virtual table currently open in the data preview.
type Service struct {
	opts        Options
	synthesizer *Synthesizer

	mu             sync.RWMutex
	activeBoard    string
	previewTableID string
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Catalog == nil {
		opts.Catalog = NewFixtureCatalog()
	}
	if opts.Tables == nil {
		opts.Tables = NewTableStore()
	}
	if opts.Dashboards == nil {
		opts.Dashboards = NewDashboardStore()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Translator == nil {
		opts.Translator = StaticTranslator{}
	}
	if opts.Locale == "" {
		opts.Locale = LocaleEN
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{
		opts:        opts,
		synthesizer: NewSynthesizer(opts.Catalog),
		activeBoard: opts.Dashboards.DefaultID(),
	}
}

// Locale returns the configured display language.
func (s *Service) Locale() string { return s.opts.Locale }

// Notice resolves a localized user-facing message by key.
func (s *Service) Notice(ctx context.Context, key string) string {
	return translateOrFallback(ctx, s.opts.Translator, key, s.opts.Locale, T(s.opts.Locale, key))
}

// SourceTables lists the fixed catalog tables available for synthesis.
func (s *Service) SourceTables() []DatabaseTable {
	return s.opts.Catalog.Tables()
}

// SourceTable resolves one catalog table by id.
func (s *Service) SourceTable(id string) (DatabaseTable, bool) {
	return s.opts.Catalog.Table(id)
}

// SynthesizeTable joins the selection into a new virtual table, persists it
// and opens it in the preview.
func (s *Service) SynthesizeTable(ctx context.Context, sel *Selection, name string) (VirtualTable, error) {
	vt, err := s.synthesizer.Synthesize(sel, name)
	if err != nil {
		return VirtualTable{}, err
	}
	if err := s.opts.Tables.Save(vt); err != nil {
		return VirtualTable{}, err
	}
	s.setPreview(vt.ID)
	s.recordTelemetry(ctx, "workbench.table.synthesize", map[string]any{
		"table_id": vt.ID,
		"sources":  len(vt.SourceTableIDs),
		"rows":     len(vt.Data),
	})
	return vt, nil
}

// ImportCSV parses uploaded delimited text into a virtual table, persists it
// and opens it in the preview.
func (s *Service) ImportCSV(ctx context.Context, text, name string) (VirtualTable, error) {
	vt, err := s.synthesizer.FromCSV(text, name)
	if err != nil {
		return VirtualTable{}, err
	}
	if err := s.opts.Tables.Save(vt); err != nil {
		return VirtualTable{}, err
	}
	s.setPreview(vt.ID)
	s.recordTelemetry(ctx, "workbench.table.import", map[string]any{
		"table_id": vt.ID,
		"rows":     len(vt.Data),
	})
	return vt, nil
}

// ExportTableCSV serializes a stored table to delimited text.
func (s *Service) ExportTableCSV(ctx context.Context, id string) (string, error) {
	vt, ok := s.opts.Tables.Get(id)
	if !ok {
		return "", ErrTableNotFound
	}
	s.recordTelemetry(ctx, "workbench.table.export", map[string]any{"table_id": id})
	return ExportCSV(vt), nil
}

// Tables lists every stored virtual table in creation order.
func (s *Service) Tables() []VirtualTable {
	return s.opts.Tables.List()
}

// Table resolves one stored virtual table by id.
func (s *Service) Table(id string) (VirtualTable, bool) {
	return s.opts.Tables.Get(id)
}

// RenameTable updates a table's display name.
func (s *Service) RenameTable(ctx context.Context, id, name string) error {
	if err := s.opts.Tables.Rename(id, name); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "workbench.table.rename", map[string]any{"table_id": id})
	return nil
}

// DeleteTable removes a stored table. The table open in the preview cannot be
// deleted; widgets referencing the table keep their dangling reference and
// render empty from then on.
func (s *Service) DeleteTable(ctx context.Context, id string) error {
	s.mu.RLock()
	displayed := s.previewTableID == id
	s.mu.RUnlock()
	if err := s.opts.Tables.Delete(id, displayed); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "workbench.table.delete", map[string]any{"table_id": id})
	return nil
}

// PreviewTable returns the table currently open in the data preview.
func (s *Service) PreviewTable() (VirtualTable, bool) {
	s.mu.RLock()
	id := s.previewTableID
	s.mu.RUnlock()
	if id == "" {
		return VirtualTable{}, false
	}
	return s.opts.Tables.Get(id)
}

// OpenPreview switches the data preview to the given table.
func (s *Service) OpenPreview(id string) error {
	if _, ok := s.opts.Tables.Get(id); !ok {
		return ErrTableNotFound
	}
	s.setPreview(id)
	return nil
}

// ClosePreview clears the data preview.
func (s *Service) ClosePreview() { s.setPreview("") }

func (s *Service) setPreview(id string) {
	s.mu.Lock()
	s.previewTableID = id
	s.mu.Unlock()
}

// Dashboards lists every canvas in creation order.
func (s *Service) Dashboards() []Dashboard {
	return s.opts.Dashboards.List()
}

// Dashboard resolves one canvas by id.
func (s *Service) Dashboard(id string) (Dashboard, bool) {
	return s.opts.Dashboards.Get(id)
}

// ActiveDashboard returns the canvas the user is currently viewing.
func (s *Service) ActiveDashboard() Dashboard {
	s.mu.RLock()
	id := s.activeBoard
	s.mu.RUnlock()
	if d, ok := s.opts.Dashboards.Get(id); ok {
		return d
	}
	d, _ := s.opts.Dashboards.Get(s.opts.Dashboards.DefaultID())
	return d
}

// SwitchDashboard changes the active canvas.
func (s *Service) SwitchDashboard(ctx context.Context, id string) error {
	if _, ok := s.opts.Dashboards.Get(id); !ok {
		return ErrDashboardNotFound
	}
	s.mu.Lock()
	s.activeBoard = id
	s.mu.Unlock()
	s.recordTelemetry(ctx, "workbench.dashboard.switch", map[string]any{"dashboard_id": id})
	return nil
}

// CreateDashboard adds a new empty canvas and makes it active.
func (s *Service) CreateDashboard(ctx context.Context) Dashboard {
	d := s.opts.Dashboards.Create()
	s.mu.Lock()
	s.activeBoard = d.ID
	s.mu.Unlock()
	s.recordTelemetry(ctx, "workbench.dashboard.create", map[string]any{"dashboard_id": d.ID})
	return d
}

// RenameDashboard updates a canvas display name.
func (s *Service) RenameDashboard(ctx context.Context, id, name string) error {
	if err := s.opts.Dashboards.Rename(id, name); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "workbench.dashboard.rename", map[string]any{"dashboard_id": id})
	return nil
}

// DeleteDashboard removes a canvas. Deleting the active canvas falls back to
// the default view.
func (s *Service) DeleteDashboard(ctx context.Context, id string) error {
	if err := s.opts.Dashboards.Delete(id); err != nil {
		return err
	}
	s.mu.Lock()
	if s.activeBoard == id {
		s.activeBoard = s.opts.Dashboards.DefaultID()
	}
	s.mu.Unlock()
	s.recordTelemetry(ctx, "workbench.dashboard.delete", map[string]any{"dashboard_id": id})
	return nil
}

// AddWidget creates a widget of the given type on the dashboard, seeded from
// the oldest virtual table and stacked below existing widgets.
func (s *Service) AddWidget(ctx context.Context, dashboardID string, typ WidgetType) (DashboardWidget, error) {
	seed := SeedFromTable(s.opts.Tables.First())
	widget, err := s.opts.Dashboards.AddWidget(dashboardID, typ, seed)
	if err != nil {
		return DashboardWidget{}, err
	}
	if err := s.notify(ctx, dashboardID, widget, "add"); err != nil {
		return DashboardWidget{}, err
	}
	s.recordTelemetry(ctx, "workbench.widget.add", map[string]any{
		"dashboard_id": dashboardID,
		"widget_id":    widget.ID,
		"type":         string(typ),
	})
	return widget, nil
}

// UpdateWidget merges a partial update into the widget. Config keys merge
// individually; the merged configuration is validated against the widget
// type's schema before it is stored.
func (s *Service) UpdateWidget(ctx context.Context, dashboardID, widgetID string, patch WidgetPatch) error {
	if err := s.validatePatch(dashboardID, widgetID, patch); err != nil {
		return err
	}
	if err := s.opts.Dashboards.UpdateWidget(dashboardID, widgetID, patch); err != nil {
		return err
	}
	d, _ := s.opts.Dashboards.Get(dashboardID)
	for _, w := range d.Widgets {
		if w.ID == widgetID {
			if err := s.notify(ctx, dashboardID, w, "update"); err != nil {
				return err
			}
			break
		}
	}
	s.recordTelemetry(ctx, "workbench.widget.update", map[string]any{
		"dashboard_id": dashboardID,
		"widget_id":    widgetID,
	})
	return nil
}

// RemoveWidget deletes the widget; removing an absent id is a no-op.
func (s *Service) RemoveWidget(ctx context.Context, dashboardID, widgetID string) error {
	if err := s.opts.Dashboards.RemoveWidget(dashboardID, widgetID); err != nil {
		return err
	}
	if err := s.notify(ctx, dashboardID, DashboardWidget{ID: widgetID}, "remove"); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "workbench.widget.remove", map[string]any{
		"dashboard_id": dashboardID,
		"widget_id":    widgetID,
	})
	return nil
}

// CommitLayout persists a gesture layout for the widget. The grid engine has
// already clamped the candidate; this only stores and broadcasts it.
func (s *Service) CommitLayout(ctx context.Context, dashboardID, widgetID string, layout WidgetLayout) error {
	patch := WidgetPatch{Layout: &layout}
	if err := s.opts.Dashboards.UpdateWidget(dashboardID, widgetID, patch); err != nil {
		return err
	}
	return s.notify(ctx, dashboardID, DashboardWidget{ID: widgetID, Layout: layout}, "layout")
}

// GridSession builds a grid engine whose commits flow into the dashboard
// store. The engine must be driven from a single goroutine.
func (s *Service) GridSession(ctx context.Context, dashboardID string, geom GridGeometry) *GridEngine {
	return NewGridEngine(geom, func(widgetID string, layout WidgetLayout) {
		_ = s.CommitLayout(ctx, dashboardID, widgetID, layout)
	})
}

// OpenInsightDialog starts an insight session for the widget's data source.
// The caller owns the session and must Close it when the dialog closes.
func (s *Service) OpenInsightDialog() (*InsightSession, error) {
	if s.opts.InsightClient == nil {
		return nil, errMissingInsightClient
	}
	return NewInsightSession(s.opts.InsightClient, s.opts.Locale, s.opts.InsightTimeout), nil
}

// RequestInsight issues a one-shot generation call for the widget's table and
// delivers the outcome to the callback. Convenience wrapper for transports
// that do not hold a dialog open.
func (s *Service) RequestInsight(ctx context.Context, widget DashboardWidget, deliver func(InsightResult)) error {
	session, err := s.OpenInsightDialog()
	if err != nil {
		return err
	}
	vt, ok := s.opts.Tables.Get(widget.DataSourceID)
	if !ok {
		return ErrNoData
	}
	s.recordTelemetry(ctx, "workbench.insight.request", map[string]any{
		"widget_id": widget.ID,
		"table_id":  vt.ID,
	})
	return session.Request(ctx, vt, widget.Title, deliver)
}

// AcceptInsight saves generated analysis text onto the dashboard as an AI
// card widget.
func (s *Service) AcceptInsight(ctx context.Context, dashboardID, sourceTitle, content string) (DashboardWidget, error) {
	title := s.Notice(ctx, "workbench.insight_prefix") + sourceTitle
	widget, err := s.opts.Dashboards.AddInsightCard(dashboardID, title, content)
	if err != nil {
		return DashboardWidget{}, err
	}
	if err := s.notify(ctx, dashboardID, widget, "add"); err != nil {
		return DashboardWidget{}, err
	}
	s.recordTelemetry(ctx, "workbench.insight.accept", map[string]any{
		"dashboard_id": dashboardID,
		"widget_id":    widget.ID,
	})
	return widget, nil
}

func (s *Service) notify(ctx context.Context, dashboardID string, widget DashboardWidget, reason string) error {
	return s.opts.RefreshHook.WidgetUpdated(ctx, DashboardEvent{
		DashboardID: dashboardID,
		Widget:      widget,
		Reason:      reason,
	})
}

func (s *Service) validatePatch(dashboardID, widgetID string, patch WidgetPatch) error {
	d, ok := s.opts.Dashboards.Get(dashboardID)
	if !ok {
		return ErrDashboardNotFound
	}
	for _, w := range d.Widgets {
		if w.ID != widgetID {
			continue
		}
		merged := applyPatch(w, patch)
		return s.opts.ConfigValidator.Validate(merged.Type, merged.Config)
	}
	return nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}
