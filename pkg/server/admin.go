package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"cheddar-hq/adapter/pkg/lifecycle"
	"cheddar-hq/adapter/pkg/transport/middleware"
)

// maxAdminBody bounds PUT bodies on the admin endpoint.
const maxAdminBody = 1 << 10

// LifecycleState is the admin endpoint's representation of the lifecycle.
type LifecycleState struct {
	Status            lifecycle.Status `json:"status"`
	AcceptingRequests bool             `json:"accepting_requests"`
	LastTransition    time.Time        `json:"last_transition"`
}

// LifecycleAdminHandler serves the lifecycle admin endpoint.
//
//	GET  returns the current LifecycleState
//	PUT  {"status":"PAUSED"} moves the lifecycle and returns the new state
//
// Unknown statuses and malformed bodies answer 400.
func LifecycleAdminHandler(controller LifecycleController, logger *slog.Logger) http.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	writeState := func(w http.ResponseWriter, r *http.Request) {
		current, err := controller.LifecycleStatus()
		if err != nil {
			logger.ErrorContext(r.Context(), "failed to read lifecycle status", "error", err)
			middleware.WriteError(w, middleware.NewServerError("failed to read lifecycle status"))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(LifecycleState{
			Status:            current,
			AcceptingRequests: current.AcceptsRequests(),
			LastTransition:    controller.LastTransition(),
		})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeState(w, r)

		case http.MethodPut:
			var body struct {
				Status string `json:"status"`
			}
			if err := json.NewDecoder(io.LimitReader(r.Body, maxAdminBody)).Decode(&body); err != nil {
				middleware.WriteError(w, middleware.NewInvalidRequestError("request body must be JSON: "+err.Error(), middleware.CodeInvalidJSON))
				return
			}

			next, err := lifecycle.ParseStatus(body.Status)
			if err != nil {
				middleware.WriteError(w, middleware.NewInvalidRequestError(err.Error(), middleware.CodeInvalidValue))
				return
			}

			if err := controller.SetLifecycleStatus(next); err != nil {
				if errors.Is(err, lifecycle.ErrUnknownStatus) {
					middleware.WriteError(w, middleware.NewInvalidRequestError(err.Error(), middleware.CodeInvalidValue))
					return
				}
				logger.ErrorContext(r.Context(), "failed to set lifecycle status", "error", err)
				middleware.WriteError(w, middleware.NewServerError("failed to set lifecycle status"))
				return
			}

			logger.InfoContext(r.Context(), "lifecycle status set by admin request",
				"status", next.String(),
				"remote_addr", r.RemoteAddr,
			)
			writeState(w, r)

		default:
			w.Header().Set("Allow", "GET, PUT")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
