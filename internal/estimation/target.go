package estimation

import (
	"math"
	"strings"
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

var Platforms = []Platform{
	PlatformAWS,
	PlatformAzure,
	PlatformGCP,
	PlatformVMwareCloud,
	PlatformOnPrem,
	PlatformOpenStack,
	PlatformKubernetes,
	PlatformOther,
}

func ParsePlatform(s string) (Platform, error) {
	candidate := Platform(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	for _, p := range Platforms {
		if p == candidate {
			return p, nil
		}
	}
	return "", NewErrInvalidConfiguration("unknown platform %q", s)
}

// Defaults applied by NewTargetProfile.
const (
	DefaultCompressionRatio        = 0.6
	DefaultDedupRatio              = 0.8
	DefaultChangeRatePercent       = 0.10
	DefaultNetworkProtocolOverhead = 1.2
	DefaultDeltaSyncCount          = 2
	DefaultNetworkEfficiency       = 0.8
	DefaultMaxParallelMigrations   = 10
	DefaultSLAUptimePercent        = 99.9
)

// TargetProfile describes a destination platform. It is passed by value to the engine
// and must not change while an evaluation referencing it is in flight.
type TargetProfile struct {
	Name     string   `json:"name"`
	Platform Platform `json:"platform"`

	BandwidthMbps     float64 `json:"bandwidth_mbps"`
	NetworkEfficiency float64 `json:"network_efficiency"`

	ComputePerVCPUHour  float64 `json:"compute_per_vcpu_hour"`
	MemoryPerGBHour     float64 `json:"memory_per_gb_hour"`
	StoragePerGBMonth   float64 `json:"storage_per_gb_month"`
	NetworkIngressPerGB float64 `json:"network_ingress_per_gb"`
	NetworkEgressPerGB  float64 `json:"network_egress_per_gb"`

	CompressionRatio        float64 `json:"compression_ratio"`
	DedupRatio              float64 `json:"dedup_ratio"`
	ChangeRatePercent       float64 `json:"change_rate_percent"`
	NetworkProtocolOverhead float64 `json:"network_protocol_overhead"`
	DeltaSyncCount          int     `json:"delta_sync_count"`

	MaxParallelMigrations    int     `json:"max_parallel_migrations"`
	MinRequiredBandwidthMbps float64 `json:"min_required_bandwidth_mbps"`
	SupportsLiveMigration    bool    `json:"supports_live_migration"`
	SLAUptimePercent         float64 `json:"sla_uptime_percent"`
	SupportTier              string  `json:"support_tier,omitempty"`

	Region          string   `json:"region,omitempty"`
	ComplianceFlags []string `json:"compliance_flags,omitempty"`
}

type TargetProfileOption func(*TargetProfile)

func WithBandwidth(mbps, efficiency float64) TargetProfileOption {
	return func(t *TargetProfile) {
		t.BandwidthMbps = mbps
		t.NetworkEfficiency = efficiency
	}
}

func WithComputeRates(perVCPUHour, perGBHour, storagePerGBMonth float64) TargetProfileOption {
	return func(t *TargetProfile) {
		t.ComputePerVCPUHour = perVCPUHour
		t.MemoryPerGBHour = perGBHour
		t.StoragePerGBMonth = storagePerGBMonth
	}
}

func WithNetworkRates(ingressPerGB, egressPerGB float64) TargetProfileOption {
	return func(t *TargetProfile) {
		t.NetworkIngressPerGB = ingressPerGB
		t.NetworkEgressPerGB = egressPerGB
	}
}

func WithMaxParallelMigrations(n int) TargetProfileOption {
	return func(t *TargetProfile) {
		t.MaxParallelMigrations = n
	}
}

func WithLiveMigration(supported bool) TargetProfileOption {
	return func(t *TargetProfile) {
		t.SupportsLiveMigration = supported
	}
}

func WithSLAUptime(percent float64) TargetProfileOption {
	return func(t *TargetProfile) {
		t.SLAUptimePercent = percent
	}
}

func WithComplianceFlags(flags ...string) TargetProfileOption {
	return func(t *TargetProfile) {
		t.ComplianceFlags = append([]string(nil), flags...)
	}
}

func WithMinRequiredBandwidth(mbps float64) TargetProfileOption {
	return func(t *TargetProfile) {
		t.MinRequiredBandwidthMbps = mbps
	}
}

// NewTargetProfile creates a profile with every default applied. Options override the defaults.
func NewTargetProfile(name string, platform Platform, opts ...TargetProfileOption) TargetProfile {
	t := TargetProfile{
		Name:                    name,
		Platform:                platform,
		NetworkEfficiency:       DefaultNetworkEfficiency,
		CompressionRatio:        DefaultCompressionRatio,
		DedupRatio:              DefaultDedupRatio,
		ChangeRatePercent:       DefaultChangeRatePercent,
		NetworkProtocolOverhead: DefaultNetworkProtocolOverhead,
		DeltaSyncCount:          DefaultDeltaSyncCount,
		MaxParallelMigrations:   DefaultMaxParallelMigrations,
		SLAUptimePercent:        DefaultSLAUptimePercent,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// EffectiveBandwidthMbps is the usable share of the dedicated bandwidth.
func (t TargetProfile) EffectiveBandwidthMbps() float64 {
	return t.BandwidthMbps * t.NetworkEfficiency
}

// Validate checks every documented bound of the profile. Comparisons are written so that NaN fails them.
func (t TargetProfile) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return NewErrInvalidConfiguration("target profile name is empty")
	}
	if _, err := ParsePlatform(string(t.Platform)); err != nil {
		return err
	}
	if !(t.BandwidthMbps > 0) || math.IsInf(t.BandwidthMbps, 1) {
		return NewErrInvalidConfiguration("target %q: bandwidth must be > 0, got %v", t.Name, t.BandwidthMbps)
	}
	if !(t.NetworkEfficiency > 0 && t.NetworkEfficiency <= 1) {
		return NewErrInvalidConfiguration("target %q: network efficiency must be in (0, 1], got %v", t.Name, t.NetworkEfficiency)
	}
	rates := []struct {
		field string
		value float64
	}{
		{"compute rate", t.ComputePerVCPUHour},
		{"memory rate", t.MemoryPerGBHour},
		{"storage rate", t.StoragePerGBMonth},
		{"network ingress rate", t.NetworkIngressPerGB},
		{"network egress rate", t.NetworkEgressPerGB},
		{"min required bandwidth", t.MinRequiredBandwidthMbps},
	}
	for _, r := range rates {
		if !(r.value >= 0) || math.IsInf(r.value, 1) {
			return NewErrInvalidConfiguration("target %q: %s must be a finite value >= 0, got %v", t.Name, r.field, r.value)
		}
	}
	ratios := []struct {
		field string
		value float64
	}{
		{"compression ratio", t.CompressionRatio},
		{"dedup ratio", t.DedupRatio},
		{"change rate", t.ChangeRatePercent},
	}
	for _, r := range ratios {
		if !(r.value >= 0 && r.value <= 1) {
			return NewErrInvalidConfiguration("target %q: %s must be in [0, 1], got %v", t.Name, r.field, r.value)
		}
	}
	if !(t.NetworkProtocolOverhead >= 1) || math.IsInf(t.NetworkProtocolOverhead, 1) {
		return NewErrInvalidConfiguration("target %q: protocol overhead must be a finite value >= 1, got %v", t.Name, t.NetworkProtocolOverhead)
	}
	if t.DeltaSyncCount < 0 {
		return NewErrInvalidConfiguration("target %q: delta sync count must be >= 0, got %d", t.Name, t.DeltaSyncCount)
	}
	if t.MaxParallelMigrations < 1 {
		return NewErrInvalidConfiguration("target %q: max parallel migrations must be >= 1, got %d", t.Name, t.MaxParallelMigrations)
	}
	if !(t.SLAUptimePercent >= 0 && t.SLAUptimePercent <= 100) {
		return NewErrInvalidConfiguration("target %q: SLA uptime must be in [0, 100], got %v", t.Name, t.SLAUptimePercent)
	}
	return nil
}
