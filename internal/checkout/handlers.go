package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sallati/backend-sallati/internal/catalog"
	"github.com/sallati/backend-sallati/internal/common"
	"github.com/sallati/backend-sallati/internal/obs"
	"github.com/sallati/backend-sallati/internal/pricing"
	"github.com/sallati/backend-sallati/internal/shipping"
)

// Handler exposes checkout quoting over HTTP.
type Handler struct {
	Svc *Service
}

// Quote computes one atomic totals snapshot for the submitted cart.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	out, err := h.Svc.Quote(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		case errors.Is(err, pricing.ErrInvalidQuantity):
			common.JSONError(w, http.StatusBadRequest, "INVALID_QUANTITY", err.Error(), nil)
		case errors.Is(err, catalog.ErrUnitNotFound):
			common.JSONError(w, http.StatusNotFound, "UNIT_NOT_FOUND", err.Error(), nil)
		case errors.Is(err, shipping.ErrDestinationUnreachable):
			common.JSONError(w, http.StatusUnprocessableEntity, "DESTINATION_UNREACHABLE", err.Error(), nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to compute quote", nil)
		}
		return
	}
	obs.ObserveCheckoutQuote(!out.Totals.Discount.IsZero())
	common.JSONData(w, http.StatusOK, out)
}
