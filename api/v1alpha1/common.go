package v1alpha1

func StringToRiskLevel(s string) RiskLevel {
	switch s {
	case string(RiskLevelLow):
		return RiskLevelLow
	case string(RiskLevelMedium):
		return RiskLevelMedium
	case string(RiskLevelHigh):
		return RiskLevelHigh
	case string(RiskLevelCritical):
		return RiskLevelCritical
	default:
		return RiskLevelCritical
	}
}

func StringToWaveStatus(s string) WaveStatus {
	switch s {
	case string(WaveStatusInProgress):
		return WaveStatusInProgress
	case string(WaveStatusComplete):
		return WaveStatusComplete
	case string(WaveStatusFailed):
		return WaveStatusFailed
	default:
		return WaveStatusPlanned
	}
}

func (p Platform) Valid() bool {
	switch p {
	case PlatformAWS, PlatformAzure, PlatformGCP, PlatformVMwareCloud,
		PlatformOnPrem, PlatformOpenStack, PlatformKubernetes, PlatformOther:
		return true
	default:
		return false
	}
}

func (s Strategy) Valid() bool {
	switch s {
	case StrategyRehost, StrategyReplatform, StrategyRefactor,
		StrategyRepurchase, StrategyRetire, StrategyRetain:
		return true
	default:
		return false
	}
}

func (o WaveOrdering) Valid() bool {
	switch o {
	case WaveOrderingSizeAscending, WaveOrderingCriticalityAscending, WaveOrderingCustom:
		return true
	default:
		return false
	}
}
