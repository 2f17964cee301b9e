package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	api "github.com/kubev2v/migration-scenario-planner/api/v1alpha1"
	"github.com/kubev2v/migration-scenario-planner/internal/config"
	"github.com/kubev2v/migration-scenario-planner/internal/events"
	handlers "github.com/kubev2v/migration-scenario-planner/internal/handlers/v1alpha1"
	"github.com/kubev2v/migration-scenario-planner/internal/service"
	"github.com/kubev2v/migration-scenario-planner/internal/store"
	"github.com/kubev2v/migration-scenario-planner/pkg/log"
	"github.com/kubev2v/migration-scenario-planner/pkg/metrics"
	"github.com/kubev2v/migration-scenario-planner/pkg/middleware"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	producer *events.EventProducer
	listener net.Listener
}

// New returns a new instance of the planner api server.
func New(
	cfg *config.Config,
	store store.Store,
	producer *events.EventProducer,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		producer: producer,
		listener: listener,
	}
}

func oapiErrorHandler(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = fmt.Fprintf(w, "{\"message\":%q}", fmt.Sprintf("API Error: %s", message))
}

// NewRouter wires the middlewares and the api handlers. Requests under /api are validated
// against the OpenAPI document before they reach the handlers.
func NewRouter(cfg *config.Config, swagger *openapi3.T, h *handlers.ServiceHandler, metricMiddleware *metrics.Middleware) chi.Router {
	// Skip server name validation
	swagger.Servers = nil

	oapiOpts := oapimiddleware.Options{
		ErrorHandler: oapiErrorHandler,
	}

	router := chi.NewRouter()
	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Service.AllowedOrigins,
			AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		chiMiddleware.RequestID,
		middleware.RequestID,
		log.ConditionalLogger(cfg.Service.LogLevel, zap.L(), "api_server"),
		chiMiddleware.Recoverer,
		render.SetContentType(render.ContentTypeJSON),
	)

	router.Get("/health", h.Health)
	router.Group(func(r chi.Router) {
		r.Use(oapimiddleware.OapiRequestValidatorWithOptions(swagger, &oapiOpts))
		h.Routes(r)
	})

	return router
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")
	swagger, err := api.GetSwagger()
	if err != nil {
		return fmt.Errorf("failed to load swagger spec: %w", err)
	}

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	h := handlers.NewServiceHandler(
		service.NewTargetService(s.store),
		service.NewScenarioService(s.store, service.NewEstimationEngine(s.cfg.Estimation), s.producer),
	)

	router := NewRouter(s.cfg, swagger, h, metricMiddleware)
	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
