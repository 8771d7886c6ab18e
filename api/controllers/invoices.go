package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Harshalkatakiya/invoice-maker/api/responses"
	"github.com/Harshalkatakiya/invoice-maker/api/validators"
	invoice "github.com/Harshalkatakiya/invoice-maker/internal/invoices"
	pkgerrors "github.com/Harshalkatakiya/invoice-maker/pkg/errors"
	"github.com/Harshalkatakiya/invoice-maker/pkg/logger"
)

// CreateInvoice turns a submitted line batch into a stored invoice. The
// client sends its own net and total figures; both are recomputed server-side
// and the stored values win.
func CreateInvoice(svc invoice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		payload, err := validators.DecodeJSONList[invoiceLineRequest](r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := make([]invoice.LineInput, 0, len(payload))
		for _, item := range payload {
			lines = append(lines, invoice.LineInput{
				Customer:  item.Customer,
				ProductID: item.ProductID.Int64(),
				Rate:      item.Rate,
				Unit:      item.Unit,
				Quantity:  item.Quantity,
				Discount:  item.Discount,
			})
		}

		created, err := svc.Create(r.Context(), lines)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"message":   "Invoice created",
			"invoiceId": created.InvoiceID,
		})
	}
}

// GetInvoice loads a stored invoice with its lines.
func GetInvoice(svc invoice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		raw := chi.URLParam(r, "invoiceId")
		invoiceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid invoice id"))
			return
		}

		found, err := svc.Get(r.Context(), invoiceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, found)
	}
}

// invoiceLineRequest mirrors one row of the invoice form. The client-side id,
// netAmount and totalAmount fields are accepted but advisory: amounts are
// always recomputed from rate, quantity and discount.
type invoiceLineRequest struct {
	ID          int64                `json:"id"`
	Customer    string               `json:"customer" validate:"required"`
	ProductID   validators.FlexInt64 `json:"productId" validate:"required"`
	ProductName string               `json:"productName"`
	Rate        decimal.Decimal      `json:"rate" validate:"required"`
	Unit        string               `json:"unit" validate:"required"`
	Quantity    int                  `json:"quantity" validate:"required,min=1"`
	Discount    decimal.Decimal      `json:"discount"`
	NetAmount   decimal.Decimal      `json:"netAmount"`
	TotalAmount decimal.Decimal      `json:"totalAmount"`
}
