package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the header row for one created invoice. InvoiceNo is assigned
// sequentially at creation and protected by a unique constraint; numbers are
// never reused even if a header is later deleted out of band.
type Invoice struct {
	ID           int64           `gorm:"column:invoice_id;primaryKey;autoIncrement"`
	InvoiceNo    int64           `gorm:"column:invoice_no;not null;uniqueIndex:invoices_invoice_no_key"`
	InvoiceDate  time.Time       `gorm:"column:invoice_date;type:date;not null"`
	CustomerName string          `gorm:"column:customer_name;not null"`
	TotalAmount  decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2);not null"`
	Lines        []InvoiceLine   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceLine captures the product snapshot and derived amounts for one line.
// Rate and unit are copied from the submission, not re-read from the catalog,
// so later product changes leave historical invoices untouched.
type InvoiceLine struct {
	ID          int64           `gorm:"column:line_id;primaryKey;autoIncrement"`
	InvoiceID   int64           `gorm:"column:invoice_id;not null"`
	ProductID   int64           `gorm:"column:product_id;not null"`
	Rate        decimal.Decimal `gorm:"column:rate;type:numeric(12,2);not null"`
	Unit        string          `gorm:"column:unit;not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	Discount    decimal.Decimal `gorm:"column:discount;type:numeric(5,2);not null"`
	NetAmount   decimal.Decimal `gorm:"column:net_amount;type:numeric(14,2);not null"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(16,2);not null"`
}

func (InvoiceLine) TableName() string {
	return "invoice_lines"
}
