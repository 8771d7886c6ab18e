package controllers

import (
	"net/http"

	"github.com/Harshalkatakiya/invoice-maker/api/responses"
	"github.com/Harshalkatakiya/invoice-maker/api/validators"
	product "github.com/Harshalkatakiya/invoice-maker/internal/products"
	pkgerrors "github.com/Harshalkatakiya/invoice-maker/pkg/errors"
	"github.com/Harshalkatakiya/invoice-maker/pkg/logger"
	"github.com/shopspring/decimal"
)

// ListProducts returns the full catalog as a bare JSON array, oldest first.
func ListProducts(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		products, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, products)
	}
}

// CreateProduct registers a catalog item.
func CreateProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateProduct(r.Context(), product.CreateProductInput{
			Name: payload.ProductName,
			Rate: payload.Rate,
			Unit: payload.Unit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, created)
	}
}

type createProductRequest struct {
	ProductName string          `json:"productName" validate:"required"`
	Rate        decimal.Decimal `json:"rate" validate:"required"`
	Unit        string          `json:"unit" validate:"required"`
}
