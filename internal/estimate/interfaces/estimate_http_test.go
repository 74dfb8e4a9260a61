package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"adsettle/internal/audit"
	estimateapp "adsettle/internal/estimate/application"
	estimate "adsettle/internal/estimate/domain"
	"adsettle/internal/estimate/infrastructure/memory"
)

type stubReader struct {
	rows [][]string
	err  error
}

func (r stubReader) ReadRows(fileName string, data []byte) ([][]string, error) {
	_ = fileName
	_ = data
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

type captureAudit struct {
	entries []audit.Entry
}

func (a *captureAudit) Log(ctx context.Context, entry audit.Entry) error {
	_ = ctx
	a.entries = append(a.entries, entry)
	return nil
}

func estimateRows() [][]string {
	rows := make([][]string, 13)
	rows[4] = []string{"취향의발견"}
	return append(rows,
		[]string{"리뷰비", "", "", "10", "5,000", "50,000"},
		[]string{"배송비", "", "", "4", "2,500", "10,000"},
	)
}

func newEstimateHandler(t *testing.T, reader estimateapp.RowReader) (*EstimateHandler, *memory.EstimateRepository, *captureAudit) {
	t.Helper()
	repo := memory.NewEstimateRepository()
	service, err := estimateapp.NewEstimateService(repo, reader, nil, nil)
	if err != nil {
		t.Fatalf("new estimate service: %v", err)
	}
	auditLog := &captureAudit{}
	handler, err := NewEstimateHandler(service, auditLog)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler, repo, auditLog
}

func uploadRequest(t *testing.T, fileName string, payload []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates/extract", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestExtractEndpoint(t *testing.T) {
	handler, repo, auditLog := newEstimateHandler(t, stubReader{rows: estimateRows()})

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, uploadRequest(t, "estimate.xlsx", []byte("payload")))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var doc estimate.EstimateDocument
	if err := json.Unmarshal(resp.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if doc.SupplyAmount != 60000 {
		t.Fatalf("expected supply 60000, got %v", doc.SupplyAmount)
	}
	if doc.Totals.Review != 50000 || doc.Totals.Delivery != 10000 {
		t.Fatalf("unexpected totals: %+v", doc.Totals)
	}
	if _, err := repo.GetByID(context.Background(), doc.ID); err != nil {
		t.Fatalf("expected document stored: %v", err)
	}
	if len(auditLog.entries) != 1 || auditLog.entries[0].Action != "estimate.extract" {
		t.Fatalf("expected extract audit entry, got %+v", auditLog.entries)
	}
}

func TestExtractEndpointRejectsFormat(t *testing.T) {
	handler, _, _ := newEstimateHandler(t, stubReader{err: estimate.ErrUnsupportedFormat})

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, uploadRequest(t, "estimate.csv", []byte("payload")))
	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", resp.Code)
	}
}

func TestExtractEndpointMissingFile(t *testing.T) {
	handler, _, _ := newEstimateHandler(t, stubReader{rows: estimateRows()})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("note", "no file here")
	_ = writer.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates/extract", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file field, got %d", resp.Code)
	}
}

func TestListEstimatesByMonth(t *testing.T) {
	handler, repo, _ := newEstimateHandler(t, stubReader{})
	doc := &estimate.EstimateDocument{ID: "doc-1", FileName: "a.xlsx", Month: "2025-06"}
	doc.Totals.Add(estimate.CategoryReview, 50000)
	doc.RecomputeAmounts()
	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates?month=2025-06", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var docs []*estimate.EstimateDocument
	if err := json.Unmarshal(resp.Body.Bytes(), &docs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "doc-1" {
		t.Fatalf("unexpected documents: %+v", docs)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without month, got %d", resp.Code)
	}
}

func TestRollupEndpoint(t *testing.T) {
	handler, repo, _ := newEstimateHandler(t, stubReader{})
	first := &estimate.EstimateDocument{ID: "doc-1", FileName: "a.xlsx", Month: "2025-06"}
	first.Totals.Add(estimate.CategoryReview, 50000)
	first.RecomputeAmounts()
	second := &estimate.EstimateDocument{ID: "doc-2", FileName: "b.xlsx", Month: estimate.MonthKeyUnspecified}
	second.Totals.Add(estimate.CategoryOther, 10000)
	second.RecomputeAmounts()
	for _, doc := range []*estimate.EstimateDocument{first, second} {
		if err := repo.Create(context.Background(), doc); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates/rollup", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var rollups []estimate.MonthRollup
	if err := json.Unmarshal(resp.Body.Bytes(), &rollups); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rollups) != 2 {
		t.Fatalf("expected 2 rollups, got %d", len(rollups))
	}
	if rollups[0].Month != "2025-06" || rollups[1].Month != estimate.MonthKeyUnspecified {
		t.Fatalf("unexpected rollup order: %s, %s", rollups[0].Month, rollups[1].Month)
	}
}

func TestGetAndDeleteEstimateEndpoints(t *testing.T) {
	handler, repo, auditLog := newEstimateHandler(t, stubReader{})
	doc := &estimate.EstimateDocument{ID: "doc-1", FileName: "a.xlsx", Month: "2025-06"}
	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates/doc-1", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/estimates/doc-1", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if len(auditLog.entries) != 1 || auditLog.entries[0].Action != "estimate.delete" {
		t.Fatalf("expected delete audit entry, got %+v", auditLog.entries)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/estimates/doc-1", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
}
