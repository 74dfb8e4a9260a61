package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	settlement "adsettle/internal/settlement/domain"
)

const (
	defaultSettlementTable = "settlements"
	defaultProductTable    = "settlement_products"
)

// SettlementRepository is a Postgres implementation for settlement records.
// Numeric inputs are stored as the raw text the user entered.
type SettlementRepository struct {
	db           *sql.DB
	table        string
	productTable string
}

// RepositoryOption configures the repository.
type RepositoryOption func(*SettlementRepository)

// WithTables overrides the default table names.
func WithTables(table, productTable string) RepositoryOption {
	return func(repo *SettlementRepository) {
		if table != "" {
			repo.table = table
		}
		if productTable != "" {
			repo.productTable = productTable
		}
	}
}

// NewSettlementRepository constructs a repository with defaults.
func NewSettlementRepository(db *sql.DB, opts ...RepositoryOption) *SettlementRepository {
	repo := &SettlementRepository{
		db:           db,
		table:        defaultSettlementTable,
		productTable: defaultProductTable,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Create inserts the record and its product lines in one transaction.
func (r *SettlementRepository) Create(ctx context.Context, record *settlement.SettlementRecord) error {
	if r == nil || r.db == nil {
		return errors.New("settlement repo: nil db")
	}
	if err := record.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertRecord(ctx, tx, r.table, r.productTable, record); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByID loads one record with its product lines.
func (r *SettlementRepository) GetByID(ctx context.Context, id string) (*settlement.SettlementRecord, error) {
	if id == "" {
		return nil, settlement.ErrEmptyID
	}
	records, err := r.list(ctx, "WHERE s.id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, settlement.ErrRecordNotFound
	}
	return records[0], nil
}

// ListByMonth returns the records of one month, oldest first.
func (r *SettlementRepository) ListByMonth(ctx context.Context, month settlement.MonthKey) ([]*settlement.SettlementRecord, error) {
	return r.list(ctx, "WHERE s.month = $1", month.String())
}

// Replace overwrites the stored record and its product lines in one
// transaction. Last write wins.
func (r *SettlementRepository) Replace(ctx context.Context, record *settlement.SettlementRecord) error {
	if r == nil || r.db == nil {
		return errors.New("settlement repo: nil db")
	}
	if err := record.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table), record.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return settlement.ErrRecordNotFound
	}

	if err := insertRecord(ctx, tx, r.table, r.productTable, record); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a record; product rows cascade.
func (r *SettlementRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("settlement repo: nil db")
	}
	if id == "" {
		return settlement.ErrEmptyID
	}
	result, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return settlement.ErrRecordNotFound
	}
	return nil
}

func insertRecord(ctx context.Context, tx *sql.Tx, table, productTable string, record *settlement.SettlementRecord) error {
	insert := fmt.Sprintf(`
INSERT INTO %s (
	id, label, company_name, month, memo,
	processing_fee, processing_qty, delivery_fee, delivery_qty, expense_processing_fee,
	created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`, table)

	if _, err := tx.ExecContext(ctx, insert,
		record.ID, record.Label, record.CompanyName, record.Month.String(), record.Memo,
		record.ProcessingFee, record.ProcessingQty, record.DeliveryFee, record.DeliveryQty, record.ExpenseProcessingFee,
		record.CreatedAt.UTC(), record.UpdatedAt.UTC(),
	); err != nil {
		return err
	}

	insertProduct := fmt.Sprintf(`
INSERT INTO %s (settlement_id, position, name, quantity, unit_price)
VALUES ($1,$2,$3,$4,$5)`, productTable)
	for i, line := range record.Products {
		if _, err := tx.ExecContext(ctx, insertProduct,
			record.ID, i, line.Name, line.Quantity, line.UnitPrice,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SettlementRepository) list(ctx context.Context, where string, args ...any) ([]*settlement.SettlementRecord, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("settlement repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT s.id, s.label, s.company_name, s.month, s.memo,
	s.processing_fee, s.processing_qty, s.delivery_fee, s.delivery_qty, s.expense_processing_fee,
	s.created_at, s.updated_at,
	p.name, p.quantity, p.unit_price
FROM %s s
LEFT JOIN %s p ON p.settlement_id = s.id
%s
ORDER BY s.created_at ASC, s.id ASC, p.position ASC`, r.table, r.productTable, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*settlement.SettlementRecord
	byID := make(map[string]*settlement.SettlementRecord)
	for rows.Next() {
		var (
			id, label, companyName, month, memo                           string
			processingFee, processingQty, deliveryFee, deliveryQty, ePFee string
			createdAt, updatedAt                                          time.Time
			productName, productQty, productUnitPrice                     sql.NullString
		)
		if err := rows.Scan(
			&id, &label, &companyName, &month, &memo,
			&processingFee, &processingQty, &deliveryFee, &deliveryQty, &ePFee,
			&createdAt, &updatedAt,
			&productName, &productQty, &productUnitPrice,
		); err != nil {
			return nil, err
		}

		record, ok := byID[id]
		if !ok {
			record = &settlement.SettlementRecord{
				ID:                   id,
				Label:                label,
				CompanyName:          companyName,
				Month:                settlement.MonthKey(month),
				Memo:                 memo,
				ProcessingFee:        processingFee,
				ProcessingQty:        processingQty,
				DeliveryFee:          deliveryFee,
				DeliveryQty:          deliveryQty,
				ExpenseProcessingFee: ePFee,
				CreatedAt:            createdAt,
				UpdatedAt:            updatedAt,
			}
			byID[id] = record
			records = append(records, record)
		}

		if productName.Valid {
			record.Products = append(record.Products, settlement.ProductLine{
				Name:      productName.String,
				Quantity:  productQty.String,
				UnitPrice: productUnitPrice.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
