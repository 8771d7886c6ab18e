package invoice

import (
	"github.com/Harshalkatakiya/invoice-maker/pkg/db/models"
	"github.com/shopspring/decimal"
)

const invoiceDateFormat = "2006-01-02"

// InvoiceDTO is the read model for a created invoice: the header fields plus
// the persisted line snapshots.
type InvoiceDTO struct {
	InvoiceID    int64            `json:"invoiceId"`
	InvoiceNo    int64            `json:"invoiceNo"`
	InvoiceDate  string           `json:"invoiceDate"`
	CustomerName string           `json:"customerName"`
	TotalAmount  decimal.Decimal  `json:"totalAmount"`
	Lines        []InvoiceLineDTO `json:"lines"`
}

// InvoiceLineDTO mirrors one persisted invoice line.
type InvoiceLineDTO struct {
	LineID      int64           `json:"lineId"`
	ProductID   int64           `json:"productId"`
	Rate        decimal.Decimal `json:"rate"`
	Unit        string          `json:"unit"`
	Quantity    int             `json:"quantity"`
	Discount    decimal.Decimal `json:"discount"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// NewInvoiceDTO builds the read model from the persisted header and lines.
func NewInvoiceDTO(header *models.Invoice) *InvoiceDTO {
	dto := &InvoiceDTO{
		InvoiceID:    header.ID,
		InvoiceNo:    header.InvoiceNo,
		InvoiceDate:  header.InvoiceDate.Format(invoiceDateFormat),
		CustomerName: header.CustomerName,
		TotalAmount:  header.TotalAmount,
		Lines:        make([]InvoiceLineDTO, 0, len(header.Lines)),
	}
	for _, line := range header.Lines {
		dto.Lines = append(dto.Lines, InvoiceLineDTO{
			LineID:      line.ID,
			ProductID:   line.ProductID,
			Rate:        line.Rate,
			Unit:        line.Unit,
			Quantity:    line.Quantity,
			Discount:    line.Discount,
			NetAmount:   line.NetAmount,
			TotalAmount: line.TotalAmount,
		})
	}
	return dto
}
