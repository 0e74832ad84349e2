// Package webapi serves the read-only dashboard API over generated datasets
// and experiments, plus an evaluation endpoint backed by the metrics engine.
package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/promptlens/promptlens/internal/classification"
	"github.com/promptlens/promptlens/internal/confidence"
	"github.com/promptlens/promptlens/internal/models"
	"github.com/promptlens/promptlens/internal/reporting"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

const (
	defaultPageSize = 50
	maxPageSize     = 1000
	maxEvaluateBody = 8 << 20
)

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store Store
}

// NewHandlers creates a new Handlers with the given store.
func NewHandlers(store Store) *Handlers {
	return &Handlers{store: store}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleDatasets lists datasets, filtered by the q and status query params.
func (h *Handlers) HandleDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.store.ListDatasets(listQuery(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, datasets)
}

// HandleDataset returns a single dataset.
func (h *Handlers) HandleDataset(w http.ResponseWriter, r *http.Request) {
	ds, err := h.store.GetDataset(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// HandleDatasetEntries returns one page of a dataset's entries.
func (h *Handlers) HandleDatasetEntries(w http.ResponseWriter, r *http.Request) {
	offset, err := intParam(r, "offset", 0)
	if err != nil || offset < 0 {
		writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}
	limit, err := intParam(r, "limit", defaultPageSize)
	if err != nil || limit < 1 || limit > maxPageSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxPageSize))
		return
	}

	page, err := h.store.ListEntries(r.PathValue("id"), offset, limit)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleExperiments lists experiments, filtered by the q and status query params.
func (h *Handlers) HandleExperiments(w http.ResponseWriter, r *http.Request) {
	experiments, err := h.store.ListExperiments(listQuery(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, experiments)
}

// HandleExperiment returns a single experiment.
func (h *Handlers) HandleExperiment(w http.ResponseWriter, r *http.Request) {
	exp, err := h.store.GetExperiment(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

// HandleEvaluate runs the metrics engine over the label pairs in the body.
// Malformed bodies are 400; inputs the engine rejects are 422.
func (h *Handlers) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEvaluateBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	report, err := Evaluate(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, EvaluateResponse{
		Metrics:        models.NewClassificationMetrics(report),
		Interpretation: reporting.FormatSummary(report),
	})
}

// Evaluate resolves the class set and confidence function of req and
// assembles the report.
func Evaluate(req EvaluateRequest) (*classification.Report, error) {
	classes, err := classification.ResolveClassSet(req.Classes, req.Actual, req.Predicted)
	if err != nil {
		return nil, err
	}

	kind, params := confidence.KindProxy, map[string]any(nil)
	if req.Confidence != nil {
		if req.Confidence.Type != "" {
			kind = confidence.Kind(req.Confidence.Type)
		}
		params = req.Confidence.Params
	}
	fn, err := confidence.New(kind, params)
	if err != nil {
		return nil, err
	}

	return classification.Assemble(req.Actual, req.Predicted, classes, fn)
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store Store) {
	h := NewHandlers(store)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/datasets", h.HandleDatasets)
	mux.HandleFunc("GET /api/datasets/{id}", h.HandleDataset)
	mux.HandleFunc("GET /api/datasets/{id}/entries", h.HandleDatasetEntries)
	mux.HandleFunc("GET /api/experiments", h.HandleExperiments)
	mux.HandleFunc("GET /api/experiments/{id}", h.HandleExperiment)
	mux.HandleFunc("POST /api/evaluate", h.HandleEvaluate)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func listQuery(r *http.Request) ListQuery {
	return ListQuery{
		Search: r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
	}
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrDatasetNotFound) || errors.Is(err, ErrExperimentNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
