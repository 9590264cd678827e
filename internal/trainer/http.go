package trainer

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"pokedex-service/internal/apperror"
	"pokedex-service/internal/auth"
	"pokedex-service/internal/httputil"
	"pokedex-service/internal/metrics"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// RegisterPublicRoutes registers the endpoints reachable without a
// token.
func (h *Handler) RegisterPublicRoutes(router chi.Router) {
	router.Post("/trainer/create", h.Create)
	router.Post("/trainer/auth", h.Authenticate)
}

// RegisterProtectedRoutes registers the endpoints that require the
// auth middleware, the trainer id comes from the token subject.
func (h *Handler) RegisterProtectedRoutes(router chi.Router) {
	router.Get("/trainers", h.List)
	router.Get("/trainer/all", h.CaptureSummaries)
	router.Get("/trainer", h.Get)
	router.Put("/trainer", h.Update)
	router.Delete("/trainer", h.Delete)
	router.Get("/trainer/toggle/{pokemonId}", h.ToggleCapture)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.InfoContext(r.Context(), "creating trainer", "email", req.Email)
	t, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	token, err := auth.GenerateAccessToken(t.ID.Hex())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to issue token", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	h.metrics.RecordTrainerRegistered(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Authenticate(r.Context(), req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "trainer authenticated", "email", req.Email)
	h.metrics.RecordTrainerAuthenticated(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, "Trainer authenticated successfully!")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := auth.GetTrainerID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p, err := h.service.Get(r.Context(), trainerID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	// Reading the own profile also refreshes the access token.
	token, err := auth.GenerateAccessToken(trainerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to refresh token", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"data":  p,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := auth.GetTrainerID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var patch UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.InfoContext(r.Context(), "updating trainer")
	u, err := h.service.Update(r.Context(), trainerID, patch)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"data": u})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := auth.GetTrainerID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.logger.InfoContext(r.Context(), "deleting trainer")
	if err := h.service.Delete(r.Context(), trainerID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, "Trainer has been deleted successfully!")
}

func (h *Handler) ToggleCapture(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := auth.GetTrainerID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	pokemonID := chi.URLParam(r, "pokemonId")

	h.logger.InfoContext(r.Context(), "toggling capture", "pokemonId", pokemonID)
	t, err := h.service.ToggleCapture(r.Context(), trainerID, pokemonID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordCaptureToggled(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"data": t})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	trainers, err := h.service.ListWithPokemon(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordTrainersListViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"data": trainers})
}

func (h *Handler) CaptureSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.CaptureSummaries(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"data": summaries})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "trainer operation failed", "error", err)
	}
	httputil.RespondWithError(w, status, err.Error())
}
