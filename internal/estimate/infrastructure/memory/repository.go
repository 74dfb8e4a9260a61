package memory

import (
	"context"
	"sort"
	"sync"

	estimate "adsettle/internal/estimate/domain"
)

// EstimateRepository is an in-memory repository for estimate documents.
type EstimateRepository struct {
	mu   sync.RWMutex
	data map[string]*estimate.EstimateDocument
}

// NewEstimateRepository constructs a repository.
func NewEstimateRepository() *EstimateRepository {
	return &EstimateRepository{data: make(map[string]*estimate.EstimateDocument)}
}

// Create stores a document.
func (r *EstimateRepository) Create(ctx context.Context, doc *estimate.EstimateDocument) error {
	_ = ctx
	if err := doc.Validate(); err != nil {
		return err
	}
	clone := cloneDocument(doc)
	r.mu.Lock()
	r.data[doc.ID] = clone
	r.mu.Unlock()
	return nil
}

// GetByID loads a document.
func (r *EstimateRepository) GetByID(ctx context.Context, id string) (*estimate.EstimateDocument, error) {
	_ = ctx
	if id == "" {
		return nil, estimate.ErrEmptyID
	}
	r.mu.RLock()
	doc := r.data[id]
	r.mu.RUnlock()
	if doc == nil {
		return nil, estimate.ErrDocumentNotFound
	}
	return cloneDocument(doc), nil
}

// ListByMonth returns the documents of one month bucket.
func (r *EstimateRepository) ListByMonth(ctx context.Context, month estimate.MonthKey) ([]*estimate.EstimateDocument, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var docs []*estimate.EstimateDocument
	for _, doc := range r.data {
		if doc.Month == month {
			docs = append(docs, cloneDocument(doc))
		}
	}
	sortDocuments(docs)
	return docs, nil
}

// ListAll returns every stored document.
func (r *EstimateRepository) ListAll(ctx context.Context) ([]*estimate.EstimateDocument, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := make([]*estimate.EstimateDocument, 0, len(r.data))
	for _, doc := range r.data {
		docs = append(docs, cloneDocument(doc))
	}
	sortDocuments(docs)
	return docs, nil
}

// Delete removes a document.
func (r *EstimateRepository) Delete(ctx context.Context, id string) error {
	_ = ctx
	if id == "" {
		return estimate.ErrEmptyID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return estimate.ErrDocumentNotFound
	}
	delete(r.data, id)
	return nil
}

func cloneDocument(doc *estimate.EstimateDocument) *estimate.EstimateDocument {
	clone := *doc
	if doc.IssuedAt != nil {
		issued := *doc.IssuedAt
		clone.IssuedAt = &issued
	}
	clone.Items = append([]estimate.LineItem(nil), doc.Items...)
	return &clone
}

func sortDocuments(docs []*estimate.EstimateDocument) {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
}
