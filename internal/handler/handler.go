package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"eunify/internal/codec"
	"eunify/internal/console"
	"eunify/internal/errors"
	"eunify/internal/failure"
	"eunify/internal/render"
	"eunify/internal/session"
)

const defaultHistoryLimit = 20

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// QueryRequest is the body of the console endpoints
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse wraps a raw query result
type QueryResponse struct {
	Result any `json:"result"`
}

// VisualizeResponse reports how a query result was reshaped
type VisualizeResponse struct {
	Elements     int      `json:"elements"`
	Extracted    int      `json:"extracted"`
	Skipped      int      `json:"skipped"`
	DuplicateIDs []string `json:"duplicate_ids,omitempty"`
}

// SessionHandler serves the page API on top of one session
type SessionHandler struct {
	session   *session.Session
	exporters map[string]codec.Exporter
	logger    *zap.SugaredLogger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(s *session.Session, logger *zap.SugaredLogger) *SessionHandler {
	return &SessionHandler{
		session:   s,
		exporters: codec.Exporters(),
		logger:    logger.Named("api"),
	}
}

// Register adds the API routes to mux
func (h *SessionHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/presets", h.ListPresets)
	mux.HandleFunc("POST /api/presets/{key}/load", h.LoadPreset)

	mux.HandleFunc("GET /api/graph", h.GetGraph)
	mux.HandleFunc("GET /api/render", h.GetRender)
	mux.HandleFunc("GET /api/state", h.GetState)

	mux.HandleFunc("POST /api/query", h.ExecuteQuery)
	mux.HandleFunc("POST /api/query/visualize", h.ExecuteAndVisualize)
	mux.HandleFunc("GET /api/query/examples", h.ListExamples)
	mux.HandleFunc("GET /api/query/history", h.ListHistory)

	mux.HandleFunc("POST /api/console", h.OpenConsole)
	mux.HandleFunc("DELETE /api/console", h.CloseConsole)

	mux.HandleFunc("POST /api/select/node/{id}", h.SelectNode)
	mux.HandleFunc("POST /api/select/edge/{id}", h.SelectEdge)
	mux.HandleFunc("DELETE /api/select", h.ClearSelection)
	mux.HandleFunc("POST /api/camera/{cmd}", h.Camera)

	mux.HandleFunc("GET /api/status", h.GetStatus)
	mux.HandleFunc("DELETE /api/banner", h.DismissBanner)

	mux.HandleFunc("GET /api/export/{format}", h.Export)
}

// ListPresets returns the preset catalog
func (h *SessionHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.Presets(), http.StatusOK)
}

// LoadPreset fetches a preset and replaces the graph
func (h *SessionHandler) LoadPreset(w http.ResponseWriter, r *http.Request) {
	if err := h.session.LoadPreset(r.Context(), r.PathValue("key")); err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, h.session.Snapshot(), http.StatusOK)
}

// GetGraph returns the displayed graph
func (h *SessionHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.Graph(), http.StatusOK)
}

// GetRender returns the mounted render spec
func (h *SessionHandler) GetRender(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.RenderSpec(), http.StatusOK)
}

// GetState returns the full page state
func (h *SessionHandler) GetState(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.Snapshot(), http.StatusOK)
}

// ExecuteQuery runs a traversal without touching the graph
func (h *SessionHandler) ExecuteQuery(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeQuery(w, r)
	if !ok {
		return
	}
	result, err := h.session.ExecuteQuery(r.Context(), req.Query)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, QueryResponse{Result: result}, http.StatusOK)
}

// ExecuteAndVisualize runs a traversal and shows its vertices
func (h *SessionHandler) ExecuteAndVisualize(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeQuery(w, r)
	if !ok {
		return
	}
	rep, err := h.session.ExecuteAndVisualize(r.Context(), req.Query)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, VisualizeResponse{
		Elements:     rep.Elements,
		Extracted:    rep.Extracted,
		Skipped:      rep.Skipped,
		DuplicateIDs: rep.DuplicateIDs,
	}, http.StatusOK)
}

// ListExamples returns the console's example queries
func (h *SessionHandler) ListExamples(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, console.Examples(), http.StatusOK)
}

// ListHistory returns recent console executions
func (h *SessionHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			h.writeError(w, "Invalid limit", "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.session.History(r.Context(), limit)
	if err != nil {
		h.logger.Errorw("Failed to read query history", "error", err)
		h.writeError(w, "Failed to read query history", err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, records, http.StatusOK)
}

// OpenConsole opens the query console
func (h *SessionHandler) OpenConsole(w http.ResponseWriter, r *http.Request) {
	h.session.SetConsoleOpen(true)
	w.WriteHeader(http.StatusNoContent)
}

// CloseConsole closes the query console
func (h *SessionHandler) CloseConsole(w http.ResponseWriter, r *http.Request) {
	h.session.SetConsoleOpen(false)
	w.WriteHeader(http.StatusNoContent)
}

// SelectNode selects a vertex as if it were tapped
func (h *SessionHandler) SelectNode(w http.ResponseWriter, r *http.Request) {
	if err := h.session.SelectVertex(r.PathValue("id")); err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, h.session.Snapshot().Selection, http.StatusOK)
}

// SelectEdge selects an edge as if it were tapped
func (h *SessionHandler) SelectEdge(w http.ResponseWriter, r *http.Request) {
	if err := h.session.SelectEdge(r.PathValue("id")); err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, h.session.Snapshot().Selection, http.StatusOK)
}

// ClearSelection clears the selection as a background tap would
func (h *SessionHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	if err := h.session.ClearSelection(); err != nil {
		h.writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Camera zooms or fits the viewport
func (h *SessionHandler) Camera(w http.ResponseWriter, r *http.Request) {
	cmd, err := render.ParseCamera(r.PathValue("cmd"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	if err := h.session.Camera(cmd); err != nil {
		h.writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStatus refreshes and returns the backend connection status
func (h *SessionHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.RefreshStatus(r.Context()), http.StatusOK)
}

// DismissBanner clears the error banner
func (h *SessionHandler) DismissBanner(w http.ResponseWriter, r *http.Request) {
	h.session.DismissBanner()
	w.WriteHeader(http.StatusNoContent)
}

// Export writes the displayed graph as json or yaml
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	exp, ok := h.exporters[format]
	if !ok {
		h.writeError(w, "Unsupported format", "format must be json or yaml", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", codec.ContentType(format))
	w.Header().Set("Content-Disposition", "attachment; filename=graph."+format)
	if err := exp.Export(h.session.Graph(), w); err != nil {
		h.logger.Errorw("Failed to export graph", "format", format, "error", err)
	}
}

func (h *SessionHandler) decodeQuery(w http.ResponseWriter, r *http.Request) (QueryRequest, bool) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// writeFailure maps pipeline errors onto status codes
func (h *SessionHandler) writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSuperseded):
		h.writeError(w, "Superseded", err.Error(), http.StatusConflict)
		return
	case errors.Is(err, render.ErrNotMounted):
		h.writeError(w, "Nothing to show", err.Error(), http.StatusConflict)
		return
	case errors.IsInvalidRequest(err):
		h.writeError(w, "Invalid request", err.Error(), http.StatusBadRequest)
		return
	case errors.IsNotFound(err):
		h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
		return
	}

	f := failure.As(err)
	status := http.StatusInternalServerError
	switch f.Category {
	case failure.CategoryFetch, failure.CategoryQuery:
		status = http.StatusBadGateway
	case failure.CategoryReshape:
		status = http.StatusUnprocessableEntity
	default:
		h.logger.Errorw("Request failed", f.ToLogFields()...)
	}
	h.writeError(w, f.ToUIMessage(), f.Detail(), status)
}

func (h *SessionHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warnw("Failed to encode JSON", "error", err)
	}
}

func (h *SessionHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		h.logger.Warnw("Failed to encode error response", "error", err)
	}
}
