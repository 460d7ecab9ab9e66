package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const (
	contextKeyHolderID = contextKey("holderID")
	contextKeyLogger   = contextKey("logger")
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// ensureGuestSession mints a session for first-time callers. The session
// token doubles as the holder identity for holds and bookings made without an
// authenticated customer; the identity layer is an external collaborator.
func (app *Application) ensureGuestSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := app.sessionManager.Token(r.Context())

		if sessionID == "" {
			app.sessionManager.Put(r.Context(), "guest", true)

			_, _, err := app.sessionManager.Commit(r.Context())
			if err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) withHolderID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		holderID := app.sessionManager.Token(r.Context())

		ctx := context.WithValue(r.Context(), contextKeyHolderID, holderID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) contextSetLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With("request_id", middleware.GetReqID(r.Context()))

		ctx := context.WithValue(r.Context(), contextKeyLogger, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) contextGetHolderID(r *http.Request) string {
	holderID, _ := r.Context().Value(contextKeyHolderID).(string)

	return holderID
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(contextKeyLogger).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
