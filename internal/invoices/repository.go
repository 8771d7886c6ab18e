package invoice

import (
	"context"

	"github.com/Harshalkatakiya/invoice-maker/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository maps the invoice persistence operations 1:1 to single
// statements; the batched line insert is one multi-row statement.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// MaxInvoiceNo returns the highest assigned invoice number, or 0 when no
// invoices exist yet.
func (r *Repository) MaxInvoiceNo(ctx context.Context) (int64, error) {
	var max int64
	err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("COALESCE(MAX(invoice_no), 0)").
		Scan(&max).
		Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

// CreateHeader inserts the invoice header row.
func (r *Repository) CreateHeader(ctx context.Context, header *models.Invoice) error {
	return r.db.WithContext(ctx).Omit("Lines").Create(header).Error
}

// CreateLines inserts all line rows as one batched statement.
func (r *Repository) CreateLines(ctx context.Context, lines []models.InvoiceLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

// UpdateHeaderTotal writes the aggregate total once the lines are computed.
func (r *Repository) UpdateHeaderTotal(ctx context.Context, invoiceID int64, total decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("invoice_id = ?", invoiceID).
		Update("total_amount", total).
		Error
}

// FindByID loads a header with its lines ordered by line id.
func (r *Repository) FindByID(ctx context.Context, invoiceID int64) (*models.Invoice, error) {
	var header models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_id ASC")
		}).
		First(&header, "invoice_id = ?", invoiceID).
		Error
	if err != nil {
		return nil, err
	}
	return &header, nil
}
