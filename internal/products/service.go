package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/Harshalkatakiya/invoice-maker/pkg/db/models"
	pkgerrors "github.com/Harshalkatakiya/invoice-maker/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service defines the catalog operations exposed to the HTTP layer.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
}

// Validator answers existence checks for invoice line references.
type Validator interface {
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// CreateProductInput carries the fields of a new catalog row.
type CreateProductInput struct {
	Name string
	Rate decimal.Decimal
	Unit string
}

type service struct {
	repo *Repository
}

// NewService builds a product service backed by the given repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productName is required")
	}
	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit is required")
	}
	if input.Rate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate must not be negative")
	}

	row := &models.Product{
		Name: name,
		Rate: input.Rate.Round(2),
		Unit: unit,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return NewProductDTO(created), nil
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewProductDTO(&rows[i]))
	}
	return dtos, nil
}
