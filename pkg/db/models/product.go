package models

import "github.com/shopspring/decimal"

// Product represents one catalog row. Rows are immutable once created as far
// as the invoicing workflow is concerned; invoice lines reference them but
// snapshot rate and unit at submission time.
type Product struct {
	ID   int64           `gorm:"column:product_id;primaryKey;autoIncrement"`
	Name string          `gorm:"column:product_name;not null"`
	Rate decimal.Decimal `gorm:"column:rate;type:numeric(12,2);not null"`
	Unit string          `gorm:"column:unit;not null"`
}

func (Product) TableName() string {
	return "products"
}
