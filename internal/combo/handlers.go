package combo

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sallati/backend-sallati/internal/catalog"
	"github.com/sallati/backend-sallati/internal/common"
	"github.com/sallati/backend-sallati/internal/obs"
)

// Handler exposes combo bundle pricing over HTTP.
type Handler struct {
	Catalog *catalog.Service
}

type quoteRequest struct {
	Selection map[string]int `json:"selection"`
}

// Quote prices a user-assembled selection against the combo promotion named
// in the URL.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "combo handler not configured", nil)
		return
	}
	promotionID, err := uuid.Parse(chi.URLParam(r, "promotionId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid promotion id", nil)
		return
	}
	var payload quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	selection := Selection{}
	for raw, qty := range payload.Selection {
		productID, err := uuid.Parse(raw)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid product id in selection", nil)
			return
		}
		selection.Add(productID, qty)
	}

	now := time.Now().UTC()
	snap, err := h.Catalog.Snapshot(r.Context(), now)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load catalog", nil)
		return
	}
	promo, err := snap.Bundle(promotionID)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "combo promotion not found", nil)
		return
	}
	bundle, err := BundleFromPromotion(promo)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to build bundle", nil)
		return
	}

	quote, err := Price(selection, bundle)
	if err != nil {
		if errors.Is(err, ErrIneligibleProduct) {
			common.JSONError(w, http.StatusUnprocessableEntity, "INELIGIBLE_PRODUCT", err.Error(), nil)
			return
		}
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	obs.ObserveComboQuote(string(quote.State))
	common.JSONData(w, http.StatusOK, quote)
}
