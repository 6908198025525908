package catalog

import (
	"errors"
	"net/http"
	"time"

	"github.com/sallati/backend-sallati/internal/common"
)

// Handler exposes read-only catalog endpoints.
type Handler struct {
	Svc *Service
}

// Get returns the current catalog snapshot: every unit plus the promotions
// whose window covers the moment of the request.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	now := time.Now().UTC()
	snap, err := h.Svc.Snapshot(r.Context(), now)
	if err != nil {
		if errors.Is(err, ErrAmbiguousPromotion) || errors.Is(err, ErrInvalidPromotion) {
			common.JSONError(w, http.StatusUnprocessableEntity, "AMBIGUOUS_PROMOTION", err.Error(), nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load catalog", nil)
		return
	}
	active := make([]Promotion, 0, len(snap.Promotions))
	for _, p := range snap.Promotions {
		if p.ActiveAt(now) {
			active = append(active, p)
		}
	}
	common.JSONData(w, http.StatusOK, map[string]any{
		"takenAt":    snap.TakenAt,
		"units":      snap.Units,
		"promotions": active,
	})
}
