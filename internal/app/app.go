package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"pokedex-service/internal/auth"
	"pokedex-service/internal/config"
	"pokedex-service/internal/db"
	"pokedex-service/internal/health"
	"pokedex-service/internal/httputil"
	"pokedex-service/internal/logger"
	"pokedex-service/internal/messaging"
	"pokedex-service/internal/metrics"
	"pokedex-service/internal/middleware"
	"pokedex-service/internal/pokemon"
	"pokedex-service/internal/trainer"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	config   *config.Config
	router   chi.Router
	server   *http.Server
	logger   *slog.Logger
	database *mongo.Database
}

func New() *App {
	slogLogger := logger.NewWithServiceContext("pokedex-service", "1.0.0")
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	app.database = database

	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	serviceMetrics, err := metrics.New()
	if err != nil {
		slogLogger.Warn("failed to initialize metrics", "error", err)
		serviceMetrics = metrics.NewNoop()
	}

	// NATS is optional, the service runs without eventing when the
	// broker is unreachable.
	var producer *messaging.Producer
	if cfg.NATS.URL != "" {
		producer, err = messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize NATS producer", "error", err)
			producer = nil
		}
	}

	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// Assign the concrete producer only when it exists so the services
	// see a nil interface, not a typed nil.
	var pokemonProducer pokemon.Producer
	var trainerProducer trainer.Producer
	if producer != nil {
		pokemonProducer = producer
		trainerProducer = producer
	}

	pokemonRepo := pokemon.NewRepository(database)
	pokemonService := pokemon.NewService(pokemonRepo, pokemonProducer)
	pokemonHandler := pokemon.NewHandler(pokemonService, slogLogger, serviceMetrics)
	pokemonHandler.RegisterRoutes(app.router)

	trainerRepo := trainer.NewRepository(database)
	trainerService := trainer.NewService(trainerRepo, trainerProducer)
	trainerHandler := trainer.NewHandler(trainerService, slogLogger, serviceMetrics)
	trainerHandler.RegisterPublicRoutes(app.router)

	app.router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(slogLogger))
		trainerHandler.RegisterProtectedRoutes(r)
	})

	app.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondWithError(w, http.StatusNotFound, "Not found.")
	})

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	if err := a.server.Shutdown(ctx); err != nil {
		return err
	}
	db.Close(ctx, a.database)
	return nil
}
