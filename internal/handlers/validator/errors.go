package validator

import (
	"fmt"
	"strings"
)

type ErrInvalidRequest struct {
	error
}

func NewErrInvalidRequest(fields []string) *ErrInvalidRequest {
	return &ErrInvalidRequest{fmt.Errorf("invalid request: %s", strings.Join(fields, ", "))}
}
