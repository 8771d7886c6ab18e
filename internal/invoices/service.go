package invoice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	product "github.com/Harshalkatakiya/invoice-maker/internal/products"
	"github.com/Harshalkatakiya/invoice-maker/pkg/db"
	"github.com/Harshalkatakiya/invoice-maker/pkg/db/models"
	pkgerrors "github.com/Harshalkatakiya/invoice-maker/pkg/errors"
	"github.com/Harshalkatakiya/invoice-maker/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const invoiceNoConstraint = "invoices_invoice_no_key"

// createAttempts bounds the number of times a racing invoice-number
// assignment is retried before surfacing a conflict.
const createAttempts = 3

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service assembles submitted line batches into durable invoices.
type Service interface {
	Create(ctx context.Context, lines []LineInput) (*InvoiceDTO, error)
	Get(ctx context.Context, invoiceID int64) (*InvoiceDTO, error)
}

// LineInput is one validated line of an invoice submission. Rate and unit
// come from the payload; net and total are recomputed server-side.
type LineInput struct {
	Customer  string
	ProductID int64
	Rate      decimal.Decimal
	Unit      string
	Quantity  int
	Discount  decimal.Decimal
}

type service struct {
	repo     *Repository
	registry product.Validator
	tx       txRunner
	logg     *logger.Logger
}

// NewService builds the invoice service with the required dependencies.
func NewService(repo *Repository, registry product.Validator, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if registry == nil {
		return nil, fmt.Errorf("product registry required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, registry: registry, tx: tx, logg: logg}, nil
}

// Create validates the batch, assigns the next invoice number and persists
// header plus lines inside a single transaction. A unique violation on the
// invoice number means another writer won the read-max race; the whole
// transaction is retried with a fresh number.
func (s *service) Create(ctx context.Context, lines []LineInput) (*InvoiceDTO, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice requires at least one line item")
	}
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	ids := distinctProductIDs(lines)
	missing, err := s.registry.MissingIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "validating product references")
	}
	if len(missing) > 0 {
		return nil, pkgerrors.
			New(pkgerrors.CodeValidation, "Product IDs not found: "+joinIDs(missing)).
			WithDetails(map[string]any{"missingProductIds": missing})
	}

	var header *models.Invoice
	for attempt := 1; attempt <= createAttempts; attempt++ {
		header, err = s.createOnce(ctx, lines)
		if err == nil {
			break
		}
		if !db.IsUniqueViolation(err, invoiceNoConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating invoice")
		}
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "attempt", attempt), "invoice number taken, retrying")
		}
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "invoice number contention, please retry")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithInvoiceNo(ctx, header.InvoiceNo), "invoice created")
	}
	return NewInvoiceDTO(header), nil
}

func (s *service) createOnce(ctx context.Context, lines []LineInput) (*models.Invoice, error) {
	var header *models.Invoice

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		maxNo, err := repo.MaxInvoiceNo(ctx)
		if err != nil {
			return err
		}

		header = &models.Invoice{
			InvoiceNo:    maxNo + 1,
			InvoiceDate:  time.Now(),
			CustomerName: lines[0].Customer,
			TotalAmount:  decimal.Zero.Round(2),
		}
		if err := repo.CreateHeader(ctx, header); err != nil {
			return err
		}

		rows := make([]models.InvoiceLine, 0, len(lines))
		total := decimal.Zero
		for _, line := range lines {
			net, lineTotal := LineAmounts(line.Rate, line.Quantity, line.Discount)
			total = total.Add(lineTotal)
			rows = append(rows, models.InvoiceLine{
				InvoiceID:   header.ID,
				ProductID:   line.ProductID,
				Rate:        line.Rate.Round(2),
				Unit:        line.Unit,
				Quantity:    line.Quantity,
				Discount:    line.Discount.Round(2),
				NetAmount:   net,
				TotalAmount: lineTotal,
			})
		}

		if err := repo.CreateLines(ctx, rows); err != nil {
			return err
		}
		if err := repo.UpdateHeaderTotal(ctx, header.ID, total.Round(2)); err != nil {
			return err
		}

		header.TotalAmount = total.Round(2)
		header.Lines = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return header, nil
}

// Get loads a created invoice with its lines.
func (s *service) Get(ctx context.Context, invoiceID int64) (*InvoiceDTO, error) {
	header, err := s.repo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading invoice")
	}
	return NewInvoiceDTO(header), nil
}

func validateLines(lines []LineInput) error {
	var errs error
	for i, line := range lines {
		if line.Quantity < 1 {
			errs = multierr.Append(errs, fmt.Errorf("line %d: quantity must be at least 1", i))
		}
		if line.Rate.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("line %d: rate must not be negative", i))
		}
		if line.Discount.IsNegative() || line.Discount.GreaterThan(hundred) {
			errs = multierr.Append(errs, fmt.Errorf("line %d: discount must be between 0 and 100", i))
		}
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, errs.Error())
	}
	return nil
}

// distinctProductIDs keeps the first occurrence order so that error messages
// mirror the submitted batch.
func distinctProductIDs(lines []LineInput) []int64 {
	seen := make(map[int64]struct{}, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}
