package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/kubev2v/migration-scenario-planner/api/v1alpha1"
)

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func registerStructFn(fn func(sl validator.StructLevel), types ...any) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		v.RegisterStructValidation(fn, types...)
	}
}

func NewTargetValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("target_name", nameValidator),
		},
		{
			Rule: registerFn("platform", platformValidator),
		},
	}
}

func NewScenarioValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("scenario_name", nameValidator),
		},
		{
			Rule: registerFn("strategy", strategyValidator),
		},
		{
			Rule: registerStructFn(selectorStructValidator, v1alpha1.VMSelector{}),
		},
	}
}

func NewWavesValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("ordering", orderingValidator),
		},
		{
			Rule: registerStructFn(wavesRequestStructValidator, v1alpha1.WavesRequest{}),
		},
	}
}
