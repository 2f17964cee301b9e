package v1alpha1

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	api "github.com/kubev2v/migration-scenario-planner/api/v1alpha1"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/handlers/validator"
	"github.com/kubev2v/migration-scenario-planner/internal/service"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
)

type ServiceHandler struct {
	targetSrv   *service.TargetService
	scenarioSrv *service.ScenarioService
}

func NewServiceHandler(targetService *service.TargetService, scenarioService *service.ScenarioService) *ServiceHandler {
	return &ServiceHandler{
		targetSrv:   targetService,
		scenarioSrv: scenarioService,
	}
}

// Routes mounts the API on r. The static scenario routes are registered before {id}.
func (h *ServiceHandler) Routes(r chi.Router) {
	r.Get("/api/v1/info", h.GetInfo)

	r.Route("/api/v1/targets", func(r chi.Router) {
		r.Get("/", h.ListTargets)
		r.Post("/", h.CreateTarget)
		r.Get("/{name}", h.GetTarget)
		r.Put("/{name}", h.UpdateTarget)
		r.Delete("/{name}", h.DeleteTarget)
	})

	r.Route("/api/v1/scenarios", func(r chi.Router) {
		r.Get("/", h.ListScenarios)
		r.Post("/", h.CreateScenario)
		r.Post("/evaluate", h.EvaluateScenarios)
		r.Post("/compare", h.CompareScenarios)
		r.Get("/{id}", h.GetScenario)
		r.Delete("/{id}", h.DeleteScenario)
		r.Post("/{id}/evaluate", h.EvaluateScenario)
		r.Get("/{id}/waves", h.ListWaves)
		r.Post("/{id}/waves", h.GenerateWaves)
	})
}

// (GET /health)
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// StatusFromError maps the service and engine errors to an http status.
func StatusFromError(err error) int {
	var (
		notFound       *service.ErrResourceNotFound
		duplicate      *service.ErrDuplicateResource
		invalidRequest *validator.ErrInvalidRequest
		paramErr       *paramError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &duplicate):
		return http.StatusConflict
	case estimation.IsIncompleteScenario(err):
		return http.StatusConflict
	case estimation.IsInvalidConfiguration(err),
		estimation.IsInvalidDependencyGraph(err),
		errors.As(err, &invalidRequest),
		errors.As(err, &paramErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		zap.S().Named("handler").Errorw("request failed", "error", err, "path", r.URL.Path)
		message = "internal error"
	}
	render.Status(r, status)
	render.JSON(w, r, api.Error{Message: message})
}

func renderJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

type paramError struct {
	error
}

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return &paramError{errors.New("empty body")}
	}
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return &paramError{err}
	}
	return nil
}

func scenarioID(r *http.Request) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return uuid.Nil, &paramError{err}
	}
	return id, nil
}

func queryParam[T any](r *http.Request, name string) (*T, error) {
	var val *T
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &val); err != nil {
		return nil, &paramError{err}
	}
	return val, nil
}
