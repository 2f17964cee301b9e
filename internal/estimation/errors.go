package estimation

import (
	"errors"
	"fmt"
)

type ErrInvalidConfiguration struct {
	error
}

func NewErrInvalidConfiguration(format string, args ...any) *ErrInvalidConfiguration {
	return &ErrInvalidConfiguration{fmt.Errorf("invalid configuration: "+format, args...)}
}

type ErrInvalidDependencyGraph struct {
	error
}

func NewErrInvalidDependencyGraph(format string, args ...any) *ErrInvalidDependencyGraph {
	return &ErrInvalidDependencyGraph{fmt.Errorf("invalid dependency graph: "+format, args...)}
}

type ErrIncompleteScenario struct {
	error
}

func NewErrIncompleteScenario(name string) *ErrIncompleteScenario {
	return &ErrIncompleteScenario{fmt.Errorf("scenario %q has not been evaluated", name)}
}

func IsInvalidConfiguration(err error) bool {
	var e *ErrInvalidConfiguration
	return errors.As(err, &e)
}

func IsInvalidDependencyGraph(err error) bool {
	var e *ErrInvalidDependencyGraph
	return errors.As(err, &e)
}

func IsIncompleteScenario(err error) bool {
	var e *ErrIncompleteScenario
	return errors.As(err, &e)
}
