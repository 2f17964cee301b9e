package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

type Platform string

const (
	PlatformAWS         Platform = "AWS"
	PlatformAzure       Platform = "AZURE"
	PlatformGCP         Platform = "GCP"
	PlatformVMwareCloud Platform = "VMWARE_CLOUD"
	PlatformOnPrem      Platform = "ON_PREM"
	PlatformOpenStack   Platform = "OPENSTACK"
	PlatformKubernetes  Platform = "KUBERNETES"
	PlatformOther       Platform = "OTHER"
)

type Strategy string

const (
	StrategyRehost     Strategy = "REHOST"
	StrategyReplatform Strategy = "REPLATFORM"
	StrategyRefactor   Strategy = "REFACTOR"
	StrategyRepurchase Strategy = "REPURCHASE"
	StrategyRetire     Strategy = "RETIRE"
	StrategyRetain     Strategy = "RETAIN"
)

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

type WaveOrdering string

const (
	WaveOrderingSizeAscending        WaveOrdering = "SIZE_ASCENDING"
	WaveOrderingCriticalityAscending WaveOrdering = "CRITICALITY_ASCENDING"
	WaveOrderingCustom               WaveOrdering = "CUSTOM"
)

type WaveStatus string

const (
	WaveStatusPlanned    WaveStatus = "PLANNED"
	WaveStatusInProgress WaveStatus = "IN_PROGRESS"
	WaveStatusComplete   WaveStatus = "COMPLETE"
	WaveStatusFailed     WaveStatus = "FAILED"
)

type Error struct {
	Message string `json:"message"`
}

type Info struct {
	GitCommit   string `json:"gitCommit"`
	VersionName string `json:"versionName"`
}

type VM struct {
	Id          string  `json:"id" validate:"required"`
	Name        *string `json:"name,omitempty"`
	Vcpus       int     `json:"vcpus" validate:"gte=0"`
	MemoryMb    int64   `json:"memoryMb" validate:"gte=0"`
	StorageMb   int64   `json:"storageMb" validate:"gte=0"`
	Criticality *int    `json:"criticality,omitempty"`
	Datacenter  *string `json:"datacenter,omitempty"`
}

// Target is the wire form of a target profile. Optional fields fall back to the profile defaults.
type Target struct {
	Name     string   `json:"name"`
	Platform Platform `json:"platform"`

	BandwidthMbps     float64 `json:"bandwidthMbps"`
	NetworkEfficiency float64 `json:"networkEfficiency"`

	ComputePerVcpuHour  float64 `json:"computePerVcpuHour"`
	MemoryPerGbHour     float64 `json:"memoryPerGbHour"`
	StoragePerGbMonth   float64 `json:"storagePerGbMonth"`
	NetworkIngressPerGb float64 `json:"networkIngressPerGb"`
	NetworkEgressPerGb  float64 `json:"networkEgressPerGb"`

	CompressionRatio        float64 `json:"compressionRatio"`
	DedupRatio              float64 `json:"dedupRatio"`
	ChangeRatePercent       float64 `json:"changeRatePercent"`
	NetworkProtocolOverhead float64 `json:"networkProtocolOverhead"`
	DeltaSyncCount          int     `json:"deltaSyncCount"`

	MaxParallelMigrations    int      `json:"maxParallelMigrations"`
	MinRequiredBandwidthMbps float64  `json:"minRequiredBandwidthMbps"`
	SupportsLiveMigration    bool     `json:"supportsLiveMigration"`
	SlaUptimePercent         float64  `json:"slaUptimePercent"`
	SupportTier              *string  `json:"supportTier,omitempty"`
	Region                   *string  `json:"region,omitempty"`
	ComplianceFlags          []string `json:"complianceFlags"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type TargetList []Target

type TargetCreate struct {
	Name     string   `json:"name" validate:"required,min=1,max=100,target_name"`
	Platform Platform `json:"platform" validate:"required,platform"`

	BandwidthMbps     float64  `json:"bandwidthMbps" validate:"gt=0"`
	NetworkEfficiency *float64 `json:"networkEfficiency,omitempty" validate:"omitempty,gt=0,lte=1"`

	ComputePerVcpuHour  *float64 `json:"computePerVcpuHour,omitempty" validate:"omitempty,gte=0"`
	MemoryPerGbHour     *float64 `json:"memoryPerGbHour,omitempty" validate:"omitempty,gte=0"`
	StoragePerGbMonth   *float64 `json:"storagePerGbMonth,omitempty" validate:"omitempty,gte=0"`
	NetworkIngressPerGb *float64 `json:"networkIngressPerGb,omitempty" validate:"omitempty,gte=0"`
	NetworkEgressPerGb  *float64 `json:"networkEgressPerGb,omitempty" validate:"omitempty,gte=0"`

	CompressionRatio        *float64 `json:"compressionRatio,omitempty" validate:"omitempty,gte=0,lte=1"`
	DedupRatio              *float64 `json:"dedupRatio,omitempty" validate:"omitempty,gte=0,lte=1"`
	ChangeRatePercent       *float64 `json:"changeRatePercent,omitempty" validate:"omitempty,gte=0,lte=1"`
	NetworkProtocolOverhead *float64 `json:"networkProtocolOverhead,omitempty" validate:"omitempty,gte=1"`
	DeltaSyncCount          *int     `json:"deltaSyncCount,omitempty" validate:"omitempty,gte=0"`

	MaxParallelMigrations    *int     `json:"maxParallelMigrations,omitempty" validate:"omitempty,gte=1"`
	MinRequiredBandwidthMbps *float64 `json:"minRequiredBandwidthMbps,omitempty" validate:"omitempty,gte=0"`
	SupportsLiveMigration    *bool    `json:"supportsLiveMigration,omitempty"`
	SlaUptimePercent         *float64 `json:"slaUptimePercent,omitempty" validate:"omitempty,gte=0,lte=100"`
	SupportTier              *string  `json:"supportTier,omitempty"`
	Region                   *string  `json:"region,omitempty"`
	ComplianceFlags          []string `json:"complianceFlags,omitempty"`
}

// VMSelector narrows the VMs of a scenario. Empty fields select everything.
type VMSelector struct {
	Datacenters    []string `json:"datacenters,omitempty"`
	VmIds          []string `json:"vmIds,omitempty"`
	MinCriticality *int     `json:"minCriticality,omitempty"`
	MaxCriticality *int     `json:"maxCriticality,omitempty"`
}

type ScenarioCreate struct {
	Name               string      `json:"name" validate:"required,min=1,max=100,scenario_name"`
	Target             string      `json:"target" validate:"required"`
	Strategy           Strategy    `json:"strategy" validate:"required,strategy"`
	ParallelMigrations *int        `json:"parallelMigrations,omitempty" validate:"omitempty,gte=1"`
	Vms                []VM        `json:"vms" validate:"dive"`
	Selector           *VMSelector `json:"selector,omitempty"`
}

type DurationBreakdown struct {
	InitialReplicationHours   float64 `json:"initialReplicationHours"`
	DeltaSyncHours            float64 `json:"deltaSyncHours"`
	CutoverHours              float64 `json:"cutoverHours"`
	TotalReplicationHours     float64 `json:"totalReplicationHours"`
	TotalHours                float64 `json:"totalHours"`
	TotalDays                 float64 `json:"totalDays"`
	ReplicationDays           float64 `json:"replicationDays"`
	CutoverDays               float64 `json:"cutoverDays"`
	MigrationWaves            int     `json:"migrationWaves"`
	EffectiveDataTb           float64 `json:"effectiveDataTb"`
	OriginalDataTb            float64 `json:"originalDataTb"`
	CompressionSavingsPercent float64 `json:"compressionSavingsPercent"`
	DedupSavingsPercent       float64 `json:"dedupSavingsPercent"`
}

type MigrationCost struct {
	Labor           float64 `json:"labor"`
	NetworkTransfer float64 `json:"networkTransfer"`
	Total           float64 `json:"total"`
}

type RuntimeCost struct {
	Compute float64 `json:"compute"`
	Memory  float64 `json:"memory"`
	Storage float64 `json:"storage"`
	Total   float64 `json:"total"`
}

type CostBreakdown struct {
	MigrationCost      MigrationCost `json:"migrationCost"`
	RuntimeCostMonthly RuntimeCost   `json:"runtimeCostMonthly"`
	ProjectionMonths   int           `json:"projectionMonths"`
	ProjectedTotal     float64       `json:"projectedTotal"`
}

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

type ScenarioOutputs struct {
	VmCount        int               `json:"vmCount"`
	Warnings       []string          `json:"warnings"`
	Duration       DurationBreakdown `json:"duration"`
	Cost           CostBreakdown     `json:"cost"`
	Risk           RiskAssessment    `json:"risk"`
	Recommendation Recommendation    `json:"recommendation"`
}

type Scenario struct {
	Id                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	Criteria           string           `json:"criteria"`
	Target             Target           `json:"target"`
	Strategy           Strategy         `json:"strategy"`
	ParallelMigrations int              `json:"parallelMigrations"`
	Vms                []VM             `json:"vms"`
	Outputs            *ScenarioOutputs `json:"outputs,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          *time.Time       `json:"updatedAt,omitempty"`
	EvaluatedAt        *time.Time       `json:"evaluatedAt,omitempty"`
}

type ScenarioList []Scenario

type ScenarioIds struct {
	Ids []uuid.UUID `json:"ids"`
}

type WaveDependency struct {
	Wave      int   `json:"wave" validate:"gte=1"`
	DependsOn []int `json:"dependsOn" validate:"dive,gte=1"`
}

type WavesRequest struct {
	WaveSize     *int             `json:"waveSize,omitempty" validate:"omitempty,gte=1"`
	Ordering     *WaveOrdering    `json:"ordering,omitempty" validate:"omitempty,ordering"`
	CustomOrder  []string         `json:"customOrder,omitempty"`
	Dependencies []WaveDependency `json:"dependencies,omitempty" validate:"dive"`
}

type Wave struct {
	Number    int        `json:"number"`
	VmIds     []string   `json:"vmIds"`
	DependsOn []int      `json:"dependsOn"`
	Status    WaveStatus `json:"status"`
	StorageGb float64    `json:"storageGb"`
}

type WaveList []Wave

type ComparisonRow struct {
	Scenario     string    `json:"scenario"`
	Target       string    `json:"target"`
	Strategy     Strategy  `json:"strategy"`
	DurationDays float64   `json:"durationDays"`
	TotalCost    float64   `json:"totalCost"`
	RiskLevel    RiskLevel `json:"riskLevel"`
	Score        float64   `json:"score"`
	Recommended  bool      `json:"recommended"`
}

type Comparison []ComparisonRow
