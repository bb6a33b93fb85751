package middleware

import (
	"net/http"
	"strings"

	"github.com/glowbeauty/glow-backend/api/responses"
	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/glowbeauty/glow-backend/pkg/logger"
)

const sessionHeader = "X-Glow-Session"

// Session resolves the storefront session identifier that keys the cart and
// wishlist slots. Authenticated users fall back to their user id so state
// follows them across devices; anonymous clients must send the header.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(sessionHeader))
			if sessionID == "" {
				sessionID = UserIDFromContext(r.Context())
			}
			if sessionID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session header is required"))
				return
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
