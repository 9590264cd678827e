package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"pokedex-service/internal/httputil"
)

type contextKey string

// TrainerIDKey is the context key for the authenticated trainer id.
const TrainerIDKey contextKey = "trainer_id"

const bearerPrefix = "Bearer "

// Middleware validates the bearer token from the Authorization header
// and adds the subject trainer id to the request context.
func Middleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization := r.Header.Get("Authorization")
			if authorization == "" {
				logger.WarnContext(r.Context(), "missing authorization header", "path", r.URL.Path)
				httputil.RespondWithError(w, http.StatusUnauthorized, "There is no authorization.")
				return
			}

			if !strings.HasPrefix(authorization, bearerPrefix) {
				logger.WarnContext(r.Context(), "malformed authorization header", "path", r.URL.Path)
				httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			trainerID, err := ValidateAccessToken(strings.TrimPrefix(authorization, bearerPrefix))
			if err != nil {
				logger.WarnContext(r.Context(), "invalid token", "error", err)
				httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), TrainerIDKey, trainerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTrainerID extracts the authenticated trainer id from context.
func GetTrainerID(ctx context.Context) (string, bool) {
	trainerID, ok := ctx.Value(TrainerIDKey).(string)
	return trainerID, ok
}
