package pokemon

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"pokedex-service/internal/apperror"
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

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/pokemon", h.Create)
	router.Get("/pokemon/{name}", h.Get)
	router.Put("/pokemon/{name}", h.Update)
	router.Delete("/pokemon/{name}", h.Delete)
	router.Get("/pokemons", h.List)
	router.Get("/pokemons/registered", h.Count)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.InfoContext(r.Context(), "creating pokemon", "name", req.Name)
	if err := h.service.Create(r.Context(), req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordPokemonCreated(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, "Pokemon has been created successfully!")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	details, err := h.service.Get(r.Context(), name)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"data": details})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var patch UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.InfoContext(r.Context(), "updating pokemon", "name", name)
	details, err := h.service.Update(r.Context(), name, patch)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"data": details})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	h.logger.InfoContext(r.Context(), "deleting pokemon", "name", name)
	if err := h.service.Delete(r.Context(), name); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, "Pokemon has been deleted successfully!")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	pokemons, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordPokemonListViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"data": pokemons})
}

func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"data": count})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "pokemon operation failed", "error", err)
	}
	httputil.RespondWithError(w, status, err.Error())
}
