package v1alpha1

import (
	"net/http"

	api "github.com/kubev2v/migration-scenario-planner/api/v1alpha1"
	"github.com/kubev2v/migration-scenario-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/migration-scenario-planner/internal/handlers/validator"
	srvMappers "github.com/kubev2v/migration-scenario-planner/internal/service/mappers"
)

// (GET /api/v1/scenarios)
func (h *ServiceHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	filter := srvMappers.ScenarioFilter{}

	target, err := queryParam[string](r, "target")
	if err != nil {
		renderError(w, r, err)
		return
	}
	if target != nil {
		filter.TargetName = *target
	}

	strategy, err := queryParam[string](r, "strategy")
	if err != nil {
		renderError(w, r, err)
		return
	}
	if strategy != nil {
		filter.Strategy = *strategy
	}

	name, err := queryParam[string](r, "name")
	if err != nil {
		renderError(w, r, err)
		return
	}
	if name != nil {
		filter.NameLike = *name
	}

	if filter.Evaluated, err = queryParam[bool](r, "evaluated"); err != nil {
		renderError(w, r, err)
		return
	}

	limit, err := queryParam[int](r, "limit")
	if err != nil {
		renderError(w, r, err)
		return
	}
	if limit != nil {
		filter.Limit = *limit
	}

	offset, err := queryParam[int](r, "offset")
	if err != nil {
		renderError(w, r, err)
		return
	}
	if offset != nil {
		filter.Offset = *offset
	}

	scenarios, err := h.scenarioSrv.ListScenarios(r.Context(), filter)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, mappers.ScenarioListToApi(scenarios))
}

// (POST /api/v1/scenarios)
func (h *ServiceHandler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	var form api.ScenarioCreate
	if err := decodeBody(r, &form); err != nil {
		renderError(w, r, err)
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewScenarioValidationRules()...)
	if err := v.Struct(form); err != nil {
		renderError(w, r, err)
		return
	}

	scenario, err := h.scenarioSrv.CreateScenario(r.Context(), mappers.ScenarioFormApi(form))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusCreated, mappers.ScenarioToApi(*scenario))
}

// (GET /api/v1/scenarios/{id})
func (h *ServiceHandler) GetScenario(w http.ResponseWriter, r *http.Request) {
	id, err := scenarioID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	scenario, err := h.scenarioSrv.GetScenario(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, mappers.ScenarioToApi(*scenario))
}

// (DELETE /api/v1/scenarios/{id})
func (h *ServiceHandler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	id, err := scenarioID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := h.scenarioSrv.DeleteScenario(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// (POST /api/v1/scenarios/{id}/evaluate)
func (h *ServiceHandler) EvaluateScenario(w http.ResponseWriter, r *http.Request) {
	id, err := scenarioID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	scenario, err := h.scenarioSrv.Evaluate(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, mappers.ScenarioToApi(*scenario))
}

// (POST /api/v1/scenarios/evaluate)
func (h *ServiceHandler) EvaluateScenarios(w http.ResponseWriter, r *http.Request) {
	var body api.ScenarioIds
	if err := decodeBody(r, &body); err != nil {
		renderError(w, r, err)
		return
	}

	scenarios, err := h.scenarioSrv.EvaluateMany(r.Context(), body.Ids)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, mappers.ScenarioListToApi(scenarios))
}

// (POST /api/v1/scenarios/compare)
func (h *ServiceHandler) CompareScenarios(w http.ResponseWriter, r *http.Request) {
	var body api.ScenarioIds
	if err := decodeBody(r, &body); err != nil {
		renderError(w, r, err)
		return
	}

	rows, err := h.scenarioSrv.Compare(r.Context(), body.Ids)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, mappers.ComparisonToApi(rows))
}

// (GET /api/v1/scenarios/{id}/waves)
func (h *ServiceHandler) ListWaves(w http.ResponseWriter, r *http.Request) {
	id, err := scenarioID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	waves, err := h.scenarioSrv.ListWaves(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, mappers.WaveListToApi(waves))
}

// (POST /api/v1/scenarios/{id}/waves)
func (h *ServiceHandler) GenerateWaves(w http.ResponseWriter, r *http.Request) {
	id, err := scenarioID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	var body api.WavesRequest
	if err := decodeBody(r, &body); err != nil {
		renderError(w, r, err)
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewWavesValidationRules()...)
	if err := v.Struct(body); err != nil {
		renderError(w, r, err)
		return
	}

	waves, err := h.scenarioSrv.GenerateWaves(r.Context(), id, mappers.WaveFormApi(body))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusCreated, mappers.WaveListToApi(waves))
}
