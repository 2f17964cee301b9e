package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id string, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrTargetNotFound(name string) *ErrResourceNotFound {
	return NewErrResourceNotFound(name, "target")
}

func NewErrScenarioNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id.String(), "scenario")
}

type ErrDuplicateResource struct {
	error
}

func NewErrDuplicateResource(resourceType, name string) *ErrDuplicateResource {
	return &ErrDuplicateResource{fmt.Errorf("%s %q already exists", resourceType, name)}
}
