package estimation

import (
	"strings"

	"github.com/google/uuid"
)

const mbPerGB = 1024.0

// VM is the inventory record consumed by the engine.
type VM struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	VCPUs       int    `json:"vcpus"`
	MemoryMB    int64  `json:"memory_mb"`
	StorageMB   int64  `json:"storage_mb"` // provisioned
	Criticality int    `json:"criticality,omitempty"`
	Datacenter  string `json:"datacenter,omitempty"`
}

func (v VM) MemoryGB() float64 { return float64(v.MemoryMB) / mbPerGB }

func (v VM) StorageGB() float64 { return float64(v.StorageMB) / mbPerGB }

// ValidateVMs rejects records the engine cannot use: missing or duplicate ids and negative sizes.
func ValidateVMs(vms []VM) error {
	seen := make(map[string]struct{}, len(vms))
	for i, vm := range vms {
		if strings.TrimSpace(vm.ID) == "" {
			return NewErrInvalidConfiguration("vm at index %d has no id", i)
		}
		if vm.VCPUs < 0 || vm.MemoryMB < 0 || vm.StorageMB < 0 {
			return NewErrInvalidConfiguration("vm %q has a negative size", vm.ID)
		}
		if _, dup := seen[vm.ID]; dup {
			return NewErrInvalidConfiguration("vm id %q is not unique", vm.ID)
		}
		seen[vm.ID] = struct{}{}
	}
	return nil
}

// DurationBreakdown is the multi-phase timeline of a scenario.
type DurationBreakdown struct {
	InitialReplicationHours   float64 `json:"initial_replication_hours"`
	DeltaSyncHours            float64 `json:"delta_sync_hours"`
	CutoverHours              float64 `json:"cutover_hours"`
	TotalReplicationHours     float64 `json:"total_replication_hours"`
	TotalHours                float64 `json:"total_hours"`
	TotalDays                 float64 `json:"total_days"`
	ReplicationDays           float64 `json:"replication_days"`
	CutoverDays               float64 `json:"cutover_days"`
	MigrationWaves            int     `json:"migration_waves"`
	EffectiveDataTB           float64 `json:"effective_data_tb"`
	OriginalDataTB            float64 `json:"original_data_tb"`
	CompressionSavingsPercent float64 `json:"compression_savings_percent"`
	DedupSavingsPercent       float64 `json:"dedup_savings_percent"`
}

type MigrationCost struct {
	Labor           float64 `json:"labor"`
	NetworkTransfer float64 `json:"network_transfer"`
	Total           float64 `json:"total"`
}

type RuntimeCost struct {
	Compute float64 `json:"compute"`
	Memory  float64 `json:"memory"`
	Storage float64 `json:"storage"`
	Total   float64 `json:"total"`
}

// CostBreakdown holds the one-time and the recurring cost of a scenario.
// ProjectedTotal is the migration cost plus the runtime cost over the projection horizon.
type CostBreakdown struct {
	MigrationCost      MigrationCost `json:"migration_cost"`
	RuntimeCostMonthly RuntimeCost   `json:"runtime_cost_monthly"`
	ProjectionMonths   int           `json:"projection_months"`
	ProjectedTotal     float64       `json:"projected_total"`
}

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

type RiskAssessment struct {
	Level   RiskLevel `json:"level"`
	Points  int       `json:"points"`
	Factors []string  `json:"factors"`
}

type Recommendation struct {
	Score       float64  `json:"score"`
	Recommended bool     `json:"recommended"`
	Reasons     []string `json:"reasons"`
}

// Outputs are the computed fields of a scenario. They are produced and replaced as a whole.
type Outputs struct {
	VMCount        int               `json:"vm_count"`
	Warnings       []string          `json:"warnings,omitempty"`
	Duration       DurationBreakdown `json:"duration"`
	Cost           CostBreakdown     `json:"cost"`
	Risk           RiskAssessment    `json:"risk"`
	Recommendation Recommendation    `json:"recommendation"`
}

// Scenario couples the inputs of an evaluation with its outputs.
// A nil Outputs means the scenario has not been evaluated.
type Scenario struct {
	ID                 uuid.UUID     `json:"id"`
	Name               string        `json:"name"`
	Criteria           string        `json:"criteria,omitempty"`
	Target             TargetProfile `json:"target"`
	Strategy           Strategy      `json:"strategy"`
	ParallelMigrations int           `json:"parallel_migrations"`
	VMs                []VM          `json:"vms"`
	Outputs            *Outputs      `json:"outputs,omitempty"`
}

func (s Scenario) Evaluated() bool { return s.Outputs != nil }

// Input returns the engine input described by the scenario.
func (s Scenario) Input() Input {
	return Input{
		VMs:                s.VMs,
		Target:             s.Target,
		Strategy:           s.Strategy,
		ParallelMigrations: s.ParallelMigrations,
	}
}

type WaveStatus string

const (
	WaveStatusPlanned    WaveStatus = "PLANNED"
	WaveStatusInProgress WaveStatus = "IN_PROGRESS"
	WaveStatusComplete   WaveStatus = "COMPLETE"
	WaveStatusFailed     WaveStatus = "FAILED"
)

// Wave is an ordered batch of VMs migrated together.
type Wave struct {
	Number    int        `json:"number"`
	VMIDs     []string   `json:"vm_ids"`
	DependsOn []int      `json:"depends_on"`
	Status    WaveStatus `json:"status"`
	StorageGB float64    `json:"storage_gb"`
}

// Input is everything a single evaluation needs.
type Input struct {
	VMs                []VM
	Target             TargetProfile
	Strategy           Strategy
	ParallelMigrations int
}

// Reference bounds used to normalize cost and duration when scoring.
type Reference struct {
	MaxCost float64
	MaxDays float64
}
