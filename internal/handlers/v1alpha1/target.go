package v1alpha1

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	api "github.com/kubev2v/migration-scenario-planner/api/v1alpha1"
	"github.com/kubev2v/migration-scenario-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/migration-scenario-planner/internal/handlers/validator"
)

// (GET /api/v1/targets)
func (h *ServiceHandler) ListTargets(w http.ResponseWriter, r *http.Request) {
	platform, err := queryParam[string](r, "platform")
	if err != nil {
		renderError(w, r, err)
		return
	}

	filter := ""
	if platform != nil {
		filter = *platform
	}

	targets, err := h.targetSrv.ListTargets(r.Context(), filter)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, mappers.TargetListToApi(targets))
}

// (POST /api/v1/targets)
func (h *ServiceHandler) CreateTarget(w http.ResponseWriter, r *http.Request) {
	var form api.TargetCreate
	if err := decodeBody(r, &form); err != nil {
		renderError(w, r, err)
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewTargetValidationRules()...)
	if err := v.Struct(form); err != nil {
		renderError(w, r, err)
		return
	}

	target, err := h.targetSrv.CreateTarget(r.Context(), mappers.TargetFormApi(form))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusCreated, mappers.TargetToApi(*target))
}

// (GET /api/v1/targets/{name})
func (h *ServiceHandler) GetTarget(w http.ResponseWriter, r *http.Request) {
	target, err := h.targetSrv.GetTarget(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, mappers.TargetToApi(*target))
}

// (PUT /api/v1/targets/{name})
func (h *ServiceHandler) UpdateTarget(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var form api.TargetCreate
	if err := decodeBody(r, &form); err != nil {
		renderError(w, r, err)
		return
	}
	if form.Name != name {
		renderError(w, r, &paramError{fmt.Errorf("target name %q does not match the path %q", form.Name, name)})
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewTargetValidationRules()...)
	if err := v.Struct(form); err != nil {
		renderError(w, r, err)
		return
	}

	target, err := h.targetSrv.UpdateTarget(r.Context(), mappers.TargetFormApi(form))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, mappers.TargetToApi(*target))
}

// (DELETE /api/v1/targets/{name})
func (h *ServiceHandler) DeleteTarget(w http.ResponseWriter, r *http.Request) {
	if err := h.targetSrv.DeleteTarget(r.Context(), chi.URLParam(r, "name")); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
