package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"adsettle/internal/audit"
	"adsettle/internal/observability/metrics"
	settlementapp "adsettle/internal/settlement/application"
	settlement "adsettle/internal/settlement/domain"
)

// SettlementHandler handles settlement record and summary APIs.
type SettlementHandler struct {
	service     *settlementapp.SettlementService
	summaries   *settlementapp.SummaryService
	auditLogger audit.Logger
}

// NewSettlementHandler constructs a handler.
func NewSettlementHandler(service *settlementapp.SettlementService, summaries *settlementapp.SummaryService, auditLogger audit.Logger) (*SettlementHandler, error) {
	if service == nil {
		return nil, errors.New("settlement handler: nil service")
	}
	if summaries == nil {
		return nil, errors.New("settlement handler: nil summary service")
	}
	return &SettlementHandler{service: service, summaries: summaries, auditLogger: auditLogger}, nil
}

// ServeHTTP handles settlement routes under /api/v1/settlements.
func (h *SettlementHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/settlements" {
		switch r.Method {
		case http.MethodPost:
			h.handleCreate(w, r)
		case http.MethodGet:
			h.handleList(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if path == "/api/v1/settlements/summary" && r.Method == http.MethodGet {
		h.handleSummary(w, r)
		return
	}
	if strings.HasPrefix(path, "/api/v1/settlements/") {
		id := strings.TrimPrefix(path, "/api/v1/settlements/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, id)
		case http.MethodPut:
			h.handleReplace(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *SettlementHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var record settlement.SettlementRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), &record)
	if err != nil {
		metrics.IncSettlementWrite("create", metrics.ResultError)
		respondSettlementError(w, err)
		return
	}
	metrics.IncSettlementWrite("create", metrics.ResultSuccess)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
	h.logAudit(r, "settlement.create", created.ID, created.Month.String())
}

func (h *SettlementHandler) handleList(w http.ResponseWriter, r *http.Request) {
	month, err := settlement.ParseMonthKey(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, "month is required as YYYY-MM", http.StatusBadRequest)
		return
	}
	records, err := h.service.ListMonth(r.Context(), month)
	if err != nil {
		respondSettlementError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(records)
}

func (h *SettlementHandler) handleSummary(w http.ResponseWriter, r *http.Request) {
	month, err := settlement.ParseMonthKey(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, "month is required as YYYY-MM", http.StatusBadRequest)
		return
	}
	start := time.Now()
	summary, err := h.summaries.MonthSummary(r.Context(), month)
	if err != nil {
		metrics.ObserveSummary(metrics.ResultError, time.Since(start))
		respondSettlementError(w, err)
		return
	}
	metrics.ObserveSummary(metrics.ResultSuccess, time.Since(start))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}

func (h *SettlementHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	record, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondSettlementError(w, err)
		return
	}
	computed, err := h.summaries.ComputeOne(r.Context(), record)
	if err != nil {
		respondSettlementError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"record":   record,
		"computed": computed,
	})
}

func (h *SettlementHandler) handleReplace(w http.ResponseWriter, r *http.Request, id string) {
	var record settlement.SettlementRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	record.ID = id
	replaced, err := h.service.Replace(r.Context(), &record)
	if err != nil {
		metrics.IncSettlementWrite("replace", metrics.ResultError)
		respondSettlementError(w, err)
		return
	}
	metrics.IncSettlementWrite("replace", metrics.ResultSuccess)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(replaced)
	h.logAudit(r, "settlement.replace", replaced.ID, replaced.Month.String())
}

func (h *SettlementHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		metrics.IncSettlementWrite("delete", metrics.ResultError)
		respondSettlementError(w, err)
		return
	}
	metrics.IncSettlementWrite("delete", metrics.ResultSuccess)
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, "settlement.delete", id, "")
}

func (h *SettlementHandler) logAudit(r *http.Request, action, resourceID, month string) {
	if h.auditLogger == nil {
		return
	}
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:        audit.Actor(r),
		Action:       action,
		ResourceType: "settlement",
		ResourceID:   resourceID,
		Month:        month,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

// SettingsHandler reads and updates the settings record.
type SettingsHandler struct {
	repo        settlement.SettingsRepository
	auditLogger audit.Logger
}

// NewSettingsHandler constructs a handler.
func NewSettingsHandler(repo settlement.SettingsRepository, auditLogger audit.Logger) (*SettingsHandler, error) {
	if repo == nil {
		return nil, errors.New("settings handler: nil repository")
	}
	return &SettingsHandler{repo: repo, auditLogger: auditLogger}, nil
}

// ServeHTTP handles GET and PUT /api/v1/settings.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := h.repo.Get(r.Context())
		if err != nil {
			http.Error(w, "settings read error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(settings)
	case http.MethodPut:
		var settings settlement.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := h.repo.Update(r.Context(), settings); err != nil {
			respondSettlementError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(settings)
		if h.auditLogger != nil {
			_ = h.auditLogger.Log(r.Context(), audit.Entry{
				Actor:        audit.Actor(r),
				Action:       "settings.update",
				ResourceType: "settings",
				ResourceID:   "settings",
				IP:           audit.ClientIP(r),
				UserAgent:    r.UserAgent(),
			})
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func respondSettlementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, settlement.ErrRecordNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, settlement.ErrEmptyID),
		errors.Is(err, settlement.ErrEmptyLabel),
		errors.Is(err, settlement.ErrInvalidMonth),
		errors.Is(err, settlement.ErrNegativeSetting),
		errors.Is(err, settlement.ErrNilRecord):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
