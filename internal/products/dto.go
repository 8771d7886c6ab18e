package product

import (
	"github.com/Harshalkatakiya/invoice-maker/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the catalog payload returned to clients.
type ProductDTO struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Rate        decimal.Decimal `json:"rate"`
	Unit        string          `json:"unit"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	return &ProductDTO{
		ProductID:   product.ID,
		ProductName: product.Name,
		Rate:        product.Rate,
		Unit:        product.Unit,
	}
}
