package controllers

import (
	"context"
	"net/http"

	"github.com/glowbeauty/glow-backend/api/responses"
	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/glowbeauty/glow-backend/pkg/logger"
	"go.uber.org/multierr"
)

// Pinger is the health surface a backing dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Live reports process liveness.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// Ready reports readiness by pinging every backing dependency, aggregating
// failures so one unreachable dependency does not mask another.
func Ready(logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var failures error
		statuses := make(map[string]string, len(deps))
		for name, dep := range deps {
			if dep == nil {
				statuses[name] = "not configured"
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				statuses[name] = "unreachable"
				failures = multierr.Append(failures, err)
				continue
			}
			statuses[name] = "ok"
		}

		if failures != nil {
			responses.WriteError(r.Context(), logg,
				w, pkgerrors.Wrap(pkgerrors.CodeDependency, failures, "readiness check failed").WithDetails(statuses))
			return
		}
		responses.WriteSuccess(w, statuses)
	}
}
