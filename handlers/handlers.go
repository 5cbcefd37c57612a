// Package handlers provides HTTP request handlers for the generics API
// endpoints. It includes catalog upload, name resolution with generic
// cross-referencing, salt search, health checks, and response formatting
// with proper input validation and error handling.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rxbridge/generics-api/catalog"
	"github.com/rxbridge/generics-api/data"
	"github.com/rxbridge/generics-api/ingest"
	"github.com/rxbridge/generics-api/interfaces"
	"github.com/rxbridge/generics-api/logging"
	"github.com/rxbridge/generics-api/matcher"
	"github.com/rxbridge/generics-api/metrics"
)

// Handler serves the catalog endpoints with injected dependencies.
type Handler struct {
	container *data.Container
	validator interfaces.InputValidator
}

// New creates a handler backed by the given container and validator.
func New(container *data.Container, validator interfaces.InputValidator) *Handler {
	return &Handler{
		container: container,
		validator: validator,
	}
}

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	})
}

type uploadResponse struct {
	Catalog catalog.Kind `json:"catalog"`
	Created int          `json:"created"`
	Updated int          `json:"updated"`
	Skipped int          `json:"skipped"`
	Total   int          `json:"total"`
}

// UploadCatalog ingests a price list file into one catalog. The file is the
// "file" part of a multipart form, CSV or TSV.
func (h *Handler) UploadCatalog(w http.ResponseWriter, r *http.Request) {
	kind, err := catalog.ParseKind(chi.URLParam(r, "catalog"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "missing uploaded file")
		return
	}
	defer file.Close()

	rows, err := ingest.ParseTable(file)
	if err != nil {
		logging.Warn("Catalog upload rejected",
			"catalog", kind,
			"filename", header.Filename,
			"error", err)
		RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("unreadable table: %v", err))
		return
	}

	result := ingest.Ingest(rows, kind, h.container.ByKind(kind))
	h.container.MarkIngested()

	logging.Info("Catalog ingested",
		"catalog", kind,
		"filename", header.Filename,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped)

	RespondWithJSON(w, http.StatusOK, uploadResponse{
		Catalog: kind,
		Created: result.Created,
		Updated: result.Updated,
		Skipped: result.Skipped,
		Total:   result.Total(),
	})
}

type searchResponse struct {
	Match        catalog.Record        `json:"match"`
	MatchedBy    matcher.Tier          `json:"matched_by"`
	Score        float64               `json:"score"`
	Alternatives []matcher.Alternative `json:"alternatives"`
}

// SearchCatalog resolves a medicine name in one catalog and returns the
// match together with same-salt alternatives from the other catalog, priced
// cheapest first.
func (h *Handler) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	kind, err := catalog.ParseKind(chi.URLParam(r, "catalog"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		RespondWithError(w, http.StatusBadRequest, "missing required parameter: name")
		return
	}

	if err := h.validator.ValidateInput(name); err != nil {
		logging.Warn("Unusual user input", "name", name, "error", err)
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	match, err := matcher.Resolve(h.container.ByKind(kind), name)
	if err != nil {
		if errors.Is(err, matcher.ErrNotFound) {
			metrics.NameResolutionsTotal.WithLabelValues("miss").Inc()
			RespondWithError(w, http.StatusNotFound, "no match found, check the spelling")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "name resolution failed")
		return
	}
	metrics.NameResolutionsTotal.WithLabelValues(string(match.Tier)).Inc()

	RespondWithJSON(w, http.StatusOK, searchResponse{
		Match:        match.Record,
		MatchedBy:    match.Tier,
		Score:        match.Score,
		Alternatives: matcher.CrossReference(match.Record, h.container.Counterpart(kind)),
	})
}

type saltResponse struct {
	Branded []catalog.Record `json:"branded"`
	Generic []catalog.Record `json:"generic"`
}

// SearchBySalt lists the records of both catalogs whose salt contains the
// query, each list priced cheapest first.
func (h *Handler) SearchBySalt(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")
	if strings.TrimSpace(query) == "" {
		RespondWithError(w, http.StatusBadRequest, "missing salt query")
		return
	}

	if err := h.validator.ValidateInput(query); err != nil {
		logging.Warn("Unusual user input", "salt", query, "error", err)
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	response := saltResponse{
		Branded: h.container.Branded().FindBySaltContains(query),
		Generic: h.container.Generic().FindBySaltContains(query),
	}

	if len(response.Branded) == 0 && len(response.Generic) == 0 {
		RespondWithError(w, http.StatusNotFound, "no records found for this salt")
		return
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status        string                 `json:"status"`
	LastIngested  string                 `json:"last_ingested"`
	UptimeSeconds float64                `json:"uptime_seconds"`
	Data          map[string]interface{} `json:"data"`
	System        map[string]interface{} `json:"system"`
}

// HealthCheck returns server health information
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.container.ServerStartTime())
	brandedCount := h.container.Branded().Len()
	genericCount := h.container.Generic().Len()
	lastIngested := h.container.LastIngested()

	// Empty catalogs are expected on a fresh boot, so the status stays
	// degraded rather than unhealthy.
	var healthStatus string
	httpStatus := http.StatusOK
	switch {
	case brandedCount == 0 && genericCount == 0:
		healthStatus = "degraded"
	default:
		healthStatus = "healthy"
	}

	lastIngestedStr := "never"
	if !lastIngested.IsZero() {
		lastIngestedStr = lastIngested.Format(time.RFC3339)
	}

	response := HealthResponse{
		Status:        healthStatus,
		LastIngested:  lastIngestedStr,
		UptimeSeconds: uptime.Seconds(),
		Data: map[string]interface{}{
			"api_version": "1.0",
			"branded":     brandedCount,
			"generic":     genericCount,
			"is_auditing": h.container.IsAuditing(),
		},
		System: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc_mb":       int(m.Alloc / 1024 / 1024),
				"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
				"sys_mb":         int(m.Sys / 1024 / 1024),
				"num_gc":         m.NumGC,
			},
		},
	}

	RespondWithJSON(w, httpStatus, response)
}
