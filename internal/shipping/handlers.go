package shipping

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/sallati/backend-sallati/internal/common"
	"github.com/sallati/backend-sallati/internal/money"
	"github.com/sallati/backend-sallati/internal/obs"
)

// Handler exposes delivery quoting over HTTP. Store location and tier
// settings come from configuration; the customer supplies coordinates and
// the current cart subtotal.
type Handler struct {
	Store    LatLng
	Settings Settings
	Validate *validator.Validate
}

type quoteRequest struct {
	Customer LatLng      `json:"customer" validate:"required"`
	Subtotal money.Money `json:"subtotal"`
}

// Quote prices delivery to the provided customer location.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var payload quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
	}
	if payload.Subtotal.IsNegative() {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "subtotal must not be negative", nil)
		return
	}

	quote, err := ComputeQuote(h.Store, payload.Customer, h.Settings, payload.Subtotal)
	if err != nil {
		if errors.Is(err, ErrDestinationUnreachable) {
			common.JSONError(w, http.StatusUnprocessableEntity, "DESTINATION_UNREACHABLE", err.Error(), nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to quote delivery", nil)
		return
	}
	obs.ObserveShippingQuote(string(quote.FreeReason))
	common.JSONData(w, http.StatusOK, quote)
}
