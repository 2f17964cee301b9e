package inventory

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// vmDocument is the layout of a YAML or JSON VM file. A bare list is accepted too.
type vmDocument struct {
	VMs []estimation.VM `json:"vms"`
}

// LoadVMs reads a VM inventory from a YAML, JSON or RVTools xlsx file.
func LoadVMs(path string) ([]estimation.VM, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read inventory %s", path)
	}

	var vms []estimation.VM
	switch {
	case strings.EqualFold(filepath.Ext(path), ".xlsx") || IsExcelFile(content):
		vms, err = ParseXLSX(content)
	default:
		vms, err = ParseDocument(content)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse inventory %s", path)
	}
	return vms, nil
}

// ParseDocument decodes VMs from a YAML or JSON document, either a list or an object with a vms key.
func ParseDocument(content []byte) ([]estimation.VM, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return []estimation.VM{}, nil
	}

	var vms []estimation.VM
	if trimmed[0] == '[' || trimmed[0] == '-' {
		if err := yaml.Unmarshal(trimmed, &vms); err != nil {
			return nil, errors.Wrap(err, "invalid vm list")
		}
	} else {
		var doc vmDocument
		if err := yaml.Unmarshal(trimmed, &doc); err != nil {
			return nil, errors.Wrap(err, "invalid vm document")
		}
		vms = doc.VMs
	}
	if vms == nil {
		vms = []estimation.VM{}
	}
	return vms, Validate(vms)
}

// Validate rejects records the engine cannot use: missing or duplicate ids and negative sizes.
func Validate(vms []estimation.VM) error {
	return estimation.ValidateVMs(vms)
}
