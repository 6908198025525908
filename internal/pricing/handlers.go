package pricing

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sallati/backend-sallati/internal/catalog"
	"github.com/sallati/backend-sallati/internal/common"
	"github.com/sallati/backend-sallati/internal/obs"
)

// Handler exposes unit price resolution over HTTP.
type Handler struct {
	Catalog  *catalog.Service
	Validate *validator.Validate
}

type resolveRequest struct {
	UnitID string `json:"unitId" validate:"required,uuid4_rfc4122|uuid_rfc4122"`
	Qty    int    `json:"qty"`
}

// Resolve returns the effective price for a unit and requested quantity.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	if h.Catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "pricing handler not configured", nil)
		return
	}
	var payload resolveRequest
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
	unitID, err := uuid.Parse(payload.UnitID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid unit id", nil)
		return
	}

	now := time.Now().UTC()
	snap, err := h.Catalog.Snapshot(r.Context(), now)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load catalog", nil)
		return
	}
	res, err := Resolve(snap, unitID, payload.Qty, now)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuantity):
			common.JSONError(w, http.StatusBadRequest, "INVALID_QUANTITY", err.Error(), nil)
		case errors.Is(err, catalog.ErrUnitNotFound):
			common.JSONError(w, http.StatusNotFound, "UNIT_NOT_FOUND", err.Error(), nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to resolve price", nil)
		}
		return
	}
	obs.ObservePriceResolution(res.IsPromotional)
	common.JSONData(w, http.StatusOK, res)
}
