package inventory

import (
	"fmt"
	"strings"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/thoas/go-funk"
)

// Selector resolves the selection criteria of a scenario into a concrete VM list.
// Empty fields do not restrict the selection.
type Selector struct {
	Datacenters    []string `json:"datacenters,omitempty"`
	VMIDs          []string `json:"vm_ids,omitempty"`
	MinCriticality *int     `json:"min_criticality,omitempty"`
	MaxCriticality *int     `json:"max_criticality,omitempty"`
}

// Select returns the VMs matching every field of the selector, in inventory order.
func (s Selector) Select(vms []estimation.VM) []estimation.VM {
	selected := make([]estimation.VM, 0, len(vms))
	for _, vm := range vms {
		if s.matches(vm) {
			selected = append(selected, vm)
		}
	}
	return selected
}

func (s Selector) matches(vm estimation.VM) bool {
	if len(s.Datacenters) > 0 && !funk.ContainsString(s.Datacenters, vm.Datacenter) {
		return false
	}
	if len(s.VMIDs) > 0 && !funk.ContainsString(s.VMIDs, vm.ID) {
		return false
	}
	if s.MinCriticality != nil && vm.Criticality < *s.MinCriticality {
		return false
	}
	if s.MaxCriticality != nil && vm.Criticality > *s.MaxCriticality {
		return false
	}
	return true
}

// String is the human readable criteria stored alongside a scenario.
func (s Selector) String() string {
	parts := []string{}
	if len(s.Datacenters) > 0 {
		parts = append(parts, fmt.Sprintf("datacenter in (%s)", strings.Join(s.Datacenters, ", ")))
	}
	if len(s.VMIDs) > 0 {
		parts = append(parts, fmt.Sprintf("vm id in (%s)", strings.Join(s.VMIDs, ", ")))
	}
	if s.MinCriticality != nil {
		parts = append(parts, fmt.Sprintf("criticality >= %d", *s.MinCriticality))
	}
	if s.MaxCriticality != nil {
		parts = append(parts, fmt.Sprintf("criticality <= %d", *s.MaxCriticality))
	}
	if len(parts) == 0 {
		return "all virtual machines"
	}
	return strings.Join(parts, " and ")
}
