package application

import (
	"context"
	"errors"
	"log"

	estimate "adsettle/internal/estimate/domain"
)

// RowReader decodes an uploaded workbook into raw sheet rows.
type RowReader interface {
	ReadRows(fileName string, data []byte) ([][]string, error)
}

// EstimateService handles the estimate document use cases: extract-and-store,
// lookup, month rollups and deletion.
type EstimateService struct {
	repo      estimate.Repository
	reader    RowReader
	extractor *ExtractService
	logger    *log.Logger
}

// NewEstimateService constructs the service.
func NewEstimateService(repo estimate.Repository, reader RowReader, extractor *ExtractService, logger *log.Logger) (*EstimateService, error) {
	if repo == nil {
		return nil, errors.New("estimate service: nil repository")
	}
	if reader == nil {
		return nil, errors.New("estimate service: nil row reader")
	}
	if extractor == nil {
		extractor = NewExtractService(nil, nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &EstimateService{repo: repo, reader: reader, extractor: extractor, logger: logger}, nil
}

// ExtractAndStore runs the extractor over an uploaded workbook and persists
// the resulting document. No partial document is stored on failure.
func (s *EstimateService) ExtractAndStore(ctx context.Context, fileName string, data []byte) (*estimate.EstimateDocument, error) {
	rows, err := s.reader.ReadRows(fileName, data)
	if err != nil {
		return nil, err
	}
	doc, err := s.extractor.Extract(fileName, rows)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Printf("estimate extracted: id=%s file=%s month=%s items=%d supply=%.0f",
		doc.ID, doc.FileName, doc.Month, len(doc.Items), doc.SupplyAmount)
	return doc, nil
}

// Get returns one document by id.
func (s *EstimateService) Get(ctx context.Context, id string) (*estimate.EstimateDocument, error) {
	if id == "" {
		return nil, estimate.ErrEmptyID
	}
	return s.repo.GetByID(ctx, id)
}

// ListMonth returns the documents of one month bucket.
func (s *EstimateService) ListMonth(ctx context.Context, month estimate.MonthKey) ([]*estimate.EstimateDocument, error) {
	return s.repo.ListByMonth(ctx, month)
}

// Rollups recomputes all month rollups from the currently stored documents.
func (s *EstimateService) Rollups(ctx context.Context) ([]estimate.MonthRollup, error) {
	docs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return estimate.BuildMonthRollups(docs), nil
}

// Delete removes a document.
func (s *EstimateService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return estimate.ErrEmptyID
	}
	return s.repo.Delete(ctx, id)
}
