package controllers

import (
	"net/http"

	"github.com/glowbeauty/glow-backend/api/middleware"
	"github.com/glowbeauty/glow-backend/api/responses"
	"github.com/glowbeauty/glow-backend/internal/orders"
	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/glowbeauty/glow-backend/pkg/logger"
)

// ListOrders returns the authenticated user's order history, newest first.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}
		list, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
