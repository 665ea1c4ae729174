package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	workbench "github.com/insightpro/go-workbench/components/workbench"
	"github.com/insightpro/go-workbench/components/workbench/commands"
	"github.com/insightpro/go-workbench/components/workbench/queries"
)

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	AddWidget     gocommand.Commander[commands.AddWidgetRequest]
	UpdateWidget  gocommand.Commander[commands.UpdateWidgetRequest]
	RemoveWidget  gocommand.Commander[commands.RemoveWidgetRequest]
	Synthesize    gocommand.Commander[commands.SynthesizeRequest]
	ImportCSV     gocommand.Commander[commands.ImportCSVRequest]
	AcceptInsight gocommand.Commander[commands.AcceptInsightRequest]
	Dashboards    gocommand.Querier[queries.DashboardQueryInput, queries.DashboardQueryResult]
	Tables        gocommand.Querier[queries.TableQueryInput, queries.TableQueryResult]
}

func (h *Handlers) HandleAddWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.AddWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.AddWidget.Execute(r.Context(), payload); err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleUpdateWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.UpdateWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.UpdateWidget.Execute(r.Context(), payload); err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, dashboardID, widgetID string) {
	input := commands.RemoveWidgetRequest{DashboardID: dashboardID, WidgetID: widgetID}
	if err := h.RemoveWidget.Execute(r.Context(), input); err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleSynthesize(w http.ResponseWriter, r *http.Request) {
	var payload commands.SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Synthesize.Execute(r.Context(), payload); err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleImportCSV(w http.ResponseWriter, r *http.Request) {
	var payload commands.ImportCSVRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.ImportCSV.Execute(r.Context(), payload); err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleAcceptInsight(w http.ResponseWriter, r *http.Request) {
	var payload commands.AcceptInsightRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.AcceptInsight.Execute(r.Context(), payload); err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleListDashboards(w http.ResponseWriter, r *http.Request) {
	result, err := h.Dashboards.Query(r.Context(), queries.DashboardQueryInput{ID: r.URL.Query().Get("id")})
	if err != nil {
		writeCommandError(w, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handlers) HandleListTables(w http.ResponseWriter, r *http.Request) {
	input := queries.TableQueryInput{
		ID:             r.URL.Query().Get("id"),
		IncludeSources: r.URL.Query().Get("sources") == "true",
	}
	result, err := h.Tables.Query(r.Context(), input)
	if err != nil {
		writeCommandError(w, err)
		return
	}
	writeJSON(w, result)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeCommandError maps domain errors onto HTTP status codes. System-owned
// rejections surface as 403 so clients can show the protected-entity notice.
func writeCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workbench.ErrSystemOwned):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, workbench.ErrDashboardNotFound), errors.Is(err, workbench.ErrTableNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, workbench.ErrTableInUse):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, workbench.ErrEmptySelection),
		errors.Is(err, workbench.ErrEmptyName),
		errors.Is(err, workbench.ErrImportTooShort),
		errors.Is(err, workbench.ErrAmbiguousNamespace):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
