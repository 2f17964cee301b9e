// Package waves partitions the VMs of a scenario into ordered migration waves.
package waves

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
)

type Ordering string

const (
	OrderingSizeAscending        Ordering = "SIZE_ASCENDING"
	OrderingCriticalityAscending Ordering = "CRITICALITY_ASCENDING"
	OrderingCustom               Ordering = "CUSTOM"
)

func ParseOrdering(s string) (Ordering, error) {
	switch o := Ordering(strings.ToUpper(strings.TrimSpace(s))); o {
	case OrderingSizeAscending, OrderingCriticalityAscending, OrderingCustom:
		return o, nil
	case "":
		return OrderingSizeAscending, nil
	default:
		return "", estimation.NewErrInvalidConfiguration("unknown wave ordering %q", s)
	}
}

// Options drive a wave generation.
type Options struct {
	WaveSize int
	Ordering Ordering
	// CustomOrder is the complete VM id order used by OrderingCustom.
	CustomOrder []string
	// Dependencies replaces the default sequential dependencies when not nil.
	// Keys and values are wave numbers.
	Dependencies map[int][]int
}

// Generate sorts the VMs by the requested ordering and chunks them into waves of WaveSize.
// Wave k depends on wave k-1 unless Dependencies overrides it. Nothing is returned on error.
func Generate(vms []estimation.VM, opts Options) ([]estimation.Wave, error) {
	if opts.WaveSize < 1 {
		return nil, estimation.NewErrInvalidConfiguration("wave size must be >= 1, got %d", opts.WaveSize)
	}
	if err := checkUniqueIDs(vms); err != nil {
		return nil, err
	}

	ordered, err := order(vms, opts)
	if err != nil {
		return nil, err
	}

	waves := make([]estimation.Wave, 0, (len(ordered)+opts.WaveSize-1)/opts.WaveSize)
	for chunk := range slices.Chunk(ordered, opts.WaveSize) {
		w := estimation.Wave{
			Number:    len(waves) + 1,
			VMIDs:     make([]string, 0, len(chunk)),
			DependsOn: []int{},
			Status:    estimation.WaveStatusPlanned,
		}
		for _, vm := range chunk {
			w.VMIDs = append(w.VMIDs, vm.ID)
			w.StorageGB += vm.StorageGB()
		}
		if w.Number > 1 {
			w.DependsOn = []int{w.Number - 1}
		}
		waves = append(waves, w)
	}

	if opts.Dependencies != nil {
		if err := applyDependencies(waves, opts.Dependencies); err != nil {
			return nil, err
		}
	}
	return waves, nil
}

func order(vms []estimation.VM, opts Options) ([]estimation.VM, error) {
	ordered := slices.Clone(vms)
	switch opts.Ordering {
	case OrderingSizeAscending, "":
		slices.SortStableFunc(ordered, func(a, b estimation.VM) int {
			if c := cmp.Compare(a.StorageMB, b.StorageMB); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
	case OrderingCriticalityAscending:
		slices.SortStableFunc(ordered, func(a, b estimation.VM) int {
			if c := cmp.Compare(a.Criticality, b.Criticality); c != 0 {
				return c
			}
			if c := cmp.Compare(a.StorageMB, b.StorageMB); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
	case OrderingCustom:
		return customOrder(vms, opts.CustomOrder)
	default:
		return nil, estimation.NewErrInvalidConfiguration("unknown wave ordering %q", opts.Ordering)
	}
	return ordered, nil
}

// customOrder requires the supplied order to be a permutation of the VM ids.
func customOrder(vms []estimation.VM, ids []string) ([]estimation.VM, error) {
	byID := make(map[string]estimation.VM, len(vms))
	for _, vm := range vms {
		byID[vm.ID] = vm
	}
	if len(ids) != len(vms) {
		return nil, estimation.NewErrInvalidConfiguration("custom order lists %d VMs, scenario has %d", len(ids), len(vms))
	}

	ordered := make([]estimation.VM, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		vm, ok := byID[id]
		if !ok {
			return nil, estimation.NewErrInvalidConfiguration("custom order references unknown VM %q", id)
		}
		if _, dup := seen[id]; dup {
			return nil, estimation.NewErrInvalidConfiguration("custom order lists VM %q twice", id)
		}
		seen[id] = struct{}{}
		ordered = append(ordered, vm)
	}
	return ordered, nil
}

func checkUniqueIDs(vms []estimation.VM) error {
	seen := make(map[string]struct{}, len(vms))
	for _, vm := range vms {
		if _, dup := seen[vm.ID]; dup {
			return estimation.NewErrInvalidConfiguration("VM %q appears more than once", vm.ID)
		}
		seen[vm.ID] = struct{}{}
	}
	return nil
}
