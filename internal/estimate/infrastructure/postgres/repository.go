package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	estimate "adsettle/internal/estimate/domain"
)

const (
	defaultEstimateTable = "estimates"
	defaultItemTable     = "estimate_items"
)

// EstimateRepository is a Postgres implementation for estimate documents.
// Category totals and derived amounts are rebuilt from the stored items on
// load, so they can never drift from the item rows.
type EstimateRepository struct {
	db        *sql.DB
	docTable  string
	itemTable string
}

// RepositoryOption configures the repository.
type RepositoryOption func(*EstimateRepository)

// WithTables overrides the default table names.
func WithTables(docTable, itemTable string) RepositoryOption {
	return func(repo *EstimateRepository) {
		if docTable != "" {
			repo.docTable = docTable
		}
		if itemTable != "" {
			repo.itemTable = itemTable
		}
	}
}

// NewEstimateRepository constructs a repository with defaults.
func NewEstimateRepository(db *sql.DB, opts ...RepositoryOption) *EstimateRepository {
	repo := &EstimateRepository{
		db:        db,
		docTable:  defaultEstimateTable,
		itemTable: defaultItemTable,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Create inserts the document and its items in one transaction.
func (r *EstimateRepository) Create(ctx context.Context, doc *estimate.EstimateDocument) error {
	if r == nil || r.db == nil {
		return errors.New("estimate repo: nil db")
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insertDoc := fmt.Sprintf(`
INSERT INTO %s (
	id, file_name,
	company_name, company_contact, company_phone, company_email,
	agency_name, agency_representative, agency_phone,
	issued_at, month, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`, r.docTable)

	var issuedAt sql.NullTime
	if doc.IssuedAt != nil {
		issuedAt = sql.NullTime{Time: doc.IssuedAt.UTC(), Valid: true}
	}
	if _, err := tx.ExecContext(ctx, insertDoc,
		doc.ID, doc.FileName,
		doc.Company.Name, doc.Company.Contact, doc.Company.Phone, doc.Company.Email,
		doc.Agency.Name, doc.Agency.Representative, doc.Agency.Phone,
		issuedAt, doc.Month.String(), doc.CreatedAt.UTC(),
	); err != nil {
		return err
	}

	insertItem := fmt.Sprintf(`
INSERT INTO %s (estimate_id, position, name, category, quantity, unit_price, total_price)
VALUES ($1,$2,$3,$4,$5,$6,$7)`, r.itemTable)
	for i, item := range doc.Items {
		if _, err := tx.ExecContext(ctx, insertItem,
			doc.ID, i, item.Name, string(item.Category), item.Quantity, item.UnitPrice, item.TotalPrice,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID loads one document with its items.
func (r *EstimateRepository) GetByID(ctx context.Context, id string) (*estimate.EstimateDocument, error) {
	if id == "" {
		return nil, estimate.ErrEmptyID
	}
	docs, err := r.list(ctx, "WHERE d.id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, estimate.ErrDocumentNotFound
	}
	return docs[0], nil
}

// ListByMonth returns the documents of one month bucket, oldest first.
func (r *EstimateRepository) ListByMonth(ctx context.Context, month estimate.MonthKey) ([]*estimate.EstimateDocument, error) {
	return r.list(ctx, "WHERE d.month = $1", month.String())
}

// ListAll returns every stored document.
func (r *EstimateRepository) ListAll(ctx context.Context) ([]*estimate.EstimateDocument, error) {
	return r.list(ctx, "")
}

// Delete removes a document; item rows cascade.
func (r *EstimateRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("estimate repo: nil db")
	}
	if id == "" {
		return estimate.ErrEmptyID
	}
	result, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.docTable), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return estimate.ErrDocumentNotFound
	}
	return nil
}

func (r *EstimateRepository) list(ctx context.Context, where string, args ...any) ([]*estimate.EstimateDocument, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("estimate repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT d.id, d.file_name,
	d.company_name, d.company_contact, d.company_phone, d.company_email,
	d.agency_name, d.agency_representative, d.agency_phone,
	d.issued_at, d.month, d.created_at,
	i.name, i.category, i.quantity, i.unit_price, i.total_price
FROM %s d
LEFT JOIN %s i ON i.estimate_id = d.id
%s
ORDER BY d.created_at ASC, d.id ASC, i.position ASC`, r.docTable, r.itemTable, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*estimate.EstimateDocument
	byID := make(map[string]*estimate.EstimateDocument)
	for rows.Next() {
		var (
			id, fileName                       string
			companyName, contact, phone, email string
			agencyName, agencyRep, agencyPhone string
			issuedAt                           sql.NullTime
			month                              string
			createdAt                          time.Time
			itemName, itemCategory             sql.NullString
			itemQuantity                       sql.NullInt64
			itemUnitPrice, itemTotalPrice      sql.NullFloat64
		)
		if err := rows.Scan(
			&id, &fileName,
			&companyName, &contact, &phone, &email,
			&agencyName, &agencyRep, &agencyPhone,
			&issuedAt, &month, &createdAt,
			&itemName, &itemCategory, &itemQuantity, &itemUnitPrice, &itemTotalPrice,
		); err != nil {
			return nil, err
		}

		doc, ok := byID[id]
		if !ok {
			doc = &estimate.EstimateDocument{
				ID:       id,
				FileName: fileName,
				Company: estimate.CompanyInfo{
					Name:    companyName,
					Contact: contact,
					Phone:   phone,
					Email:   email,
				},
				Agency: estimate.AgencyInfo{
					Name:           agencyName,
					Representative: agencyRep,
					Phone:          agencyPhone,
				},
				Month:     estimate.MonthKey(month),
				CreatedAt: createdAt,
			}
			if issuedAt.Valid {
				issued := issuedAt.Time.UTC()
				doc.IssuedAt = &issued
			}
			byID[id] = doc
			docs = append(docs, doc)
		}

		if itemName.Valid {
			item := estimate.LineItem{
				Name:       itemName.String,
				Category:   estimate.Category(itemCategory.String),
				Quantity:   int(itemQuantity.Int64),
				UnitPrice:  itemUnitPrice.Float64,
				TotalPrice: itemTotalPrice.Float64,
			}
			doc.Items = append(doc.Items, item)
			doc.Totals.Add(item.Category, item.TotalPrice)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, doc := range docs {
		doc.RecomputeAmounts()
	}
	return docs, nil
}
