package interfaces

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"adsettle/internal/audit"
	estimateapp "adsettle/internal/estimate/application"
	estimate "adsettle/internal/estimate/domain"
	"adsettle/internal/observability/metrics"
)

// maxUploadBytes bounds one uploaded workbook.
const maxUploadBytes = 10 << 20

// EstimateHandler handles estimate document APIs.
type EstimateHandler struct {
	service     *estimateapp.EstimateService
	auditLogger audit.Logger
}

// NewEstimateHandler constructs a handler.
func NewEstimateHandler(service *estimateapp.EstimateService, auditLogger audit.Logger) (*EstimateHandler, error) {
	if service == nil {
		return nil, errors.New("estimate handler: nil service")
	}
	return &EstimateHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles estimate routes under /api/v1/estimates.
func (h *EstimateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/estimates/extract" && r.Method == http.MethodPost {
		h.handleExtract(w, r)
		return
	}
	if path == "/api/v1/estimates/rollup" && r.Method == http.MethodGet {
		h.handleRollup(w, r)
		return
	}
	if path == "/api/v1/estimates" && r.Method == http.MethodGet {
		h.handleList(w, r)
		return
	}
	if strings.HasPrefix(path, "/api/v1/estimates/") {
		id := strings.TrimPrefix(path, "/api/v1/estimates/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *EstimateHandler) handleExtract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExtract(result, time.Since(start))
	}()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		result = metrics.ResultError
		metrics.IncExtractError("multipart")
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		result = metrics.ResultError
		metrics.IncExtractError("missing_file")
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		result = metrics.ResultError
		metrics.IncExtractError("read")
		http.Error(w, "file read error", http.StatusBadRequest)
		return
	}

	doc, err := h.service.ExtractAndStore(r.Context(), header.Filename, data)
	if err != nil {
		result = metrics.ResultError
		switch {
		case errors.Is(err, estimate.ErrUnsupportedFormat):
			metrics.IncExtractError("format")
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		case errors.Is(err, estimate.ErrParse):
			metrics.IncExtractError("parse")
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			respondEstimateError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(doc)
	h.logAudit(r, "estimate.extract", doc.ID, doc.Month.String())
}

func (h *EstimateHandler) handleList(w http.ResponseWriter, r *http.Request) {
	month, err := estimate.ParseMonthKey(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, "month is required as YYYY-MM", http.StatusBadRequest)
		return
	}
	docs, err := h.service.ListMonth(r.Context(), month)
	if err != nil {
		respondEstimateError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(docs)
}

func (h *EstimateHandler) handleRollup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveRollup(result, time.Since(start))
	}()

	rollups, err := h.service.Rollups(r.Context())
	if err != nil {
		result = metrics.ResultError
		respondEstimateError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rollups)
}

func (h *EstimateHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	doc, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondEstimateError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}

func (h *EstimateHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondEstimateError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, "estimate.delete", id, "")
}

func (h *EstimateHandler) logAudit(r *http.Request, action, resourceID, month string) {
	if h.auditLogger == nil {
		return
	}
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:        audit.Actor(r),
		Action:       action,
		ResourceType: "estimate",
		ResourceID:   resourceID,
		Month:        month,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func respondEstimateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, estimate.ErrDocumentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, estimate.ErrEmptyID),
		errors.Is(err, estimate.ErrEmptyFileName),
		errors.Is(err, estimate.ErrNilDocument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
