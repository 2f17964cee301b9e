package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/kubev2v/migration-scenario-planner/api/v1alpha1"
)

var nameValidRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

func nameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return nameValidRegex.MatchString(val)
}

func platformValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(v1alpha1.Platform)
	if !ok {
		return false
	}
	return val.Valid()
}

func strategyValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(v1alpha1.Strategy)
	if !ok {
		return false
	}
	return val.Valid()
}

// omitempty dereferences the pointer before the rule runs
func orderingValidator(fl validator.FieldLevel) bool {
	switch val := fl.Field().Interface().(type) {
	case v1alpha1.WaveOrdering:
		return val.Valid()
	case *v1alpha1.WaveOrdering:
		return val == nil || val.Valid()
	default:
		return false
	}
}

func selectorStructValidator(sl validator.StructLevel) {
	sel, ok := sl.Current().Interface().(v1alpha1.VMSelector)
	if !ok {
		return
	}
	if sel.MinCriticality != nil && sel.MaxCriticality != nil && *sel.MinCriticality > *sel.MaxCriticality {
		sl.ReportError(sel.MaxCriticality, "MaxCriticality", "maxCriticality", "criticality_range", "")
	}
}

func wavesRequestStructValidator(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(v1alpha1.WavesRequest)
	if !ok {
		return
	}
	custom := req.Ordering != nil && *req.Ordering == v1alpha1.WaveOrderingCustom
	if custom && len(req.CustomOrder) == 0 {
		sl.ReportError(req.CustomOrder, "CustomOrder", "customOrder", "custom_order_required", "")
	}
	if !custom && len(req.CustomOrder) > 0 {
		sl.ReportError(req.CustomOrder, "CustomOrder", "customOrder", "custom_order_unused", "")
	}
}
