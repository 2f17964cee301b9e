package estimation

import "strings"

// Strategy is one of the six migration approaches (6Rs).
type Strategy string

const (
	StrategyRehost     Strategy = "REHOST"
	StrategyReplatform Strategy = "REPLATFORM"
	StrategyRefactor   Strategy = "REFACTOR"
	StrategyRepurchase Strategy = "REPURCHASE"
	StrategyRetire     Strategy = "RETIRE"
	StrategyRetain     Strategy = "RETAIN"
)

// Strategies lists every strategy in declaration order.
var Strategies = []Strategy{
	StrategyRehost,
	StrategyReplatform,
	StrategyRefactor,
	StrategyRepurchase,
	StrategyRetire,
	StrategyRetain,
}

// StrategyProfile describes how a strategy affects replication.
type StrategyProfile struct {
	// ReplicationMultiplier scales initial + delta replication time.
	ReplicationMultiplier float64
	// ParallelFactor scales the requested number of parallel migrations.
	ParallelFactor float64
}

func ParseStrategy(s string) (Strategy, error) {
	candidate := Strategy(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range Strategies {
		if st == candidate {
			return st, nil
		}
	}
	return "", NewErrInvalidConfiguration("unknown strategy %q", s)
}

// MovesData reports whether the strategy replicates any data.
// RETIRE and RETAIN never do and short-circuit the calculators.
func (s Strategy) MovesData() (bool, error) {
	switch s {
	case StrategyRehost, StrategyReplatform, StrategyRefactor, StrategyRepurchase:
		return true, nil
	case StrategyRetire, StrategyRetain:
		return false, nil
	default:
		return false, NewErrInvalidConfiguration("unknown strategy %q", s)
	}
}

// LookupStrategyProfile returns the static profile of a data-moving strategy.
func LookupStrategyProfile(s Strategy) (StrategyProfile, error) {
	switch s {
	case StrategyRehost:
		return StrategyProfile{ReplicationMultiplier: 1.0, ParallelFactor: 1.0}, nil
	case StrategyReplatform:
		return StrategyProfile{ReplicationMultiplier: 1.2, ParallelFactor: 0.8}, nil
	case StrategyRefactor:
		return StrategyProfile{ReplicationMultiplier: 1.5, ParallelFactor: 0.5}, nil
	case StrategyRepurchase:
		return StrategyProfile{ReplicationMultiplier: 0.8, ParallelFactor: 1.5}, nil
	case StrategyRetire, StrategyRetain:
		return StrategyProfile{}, NewErrInvalidConfiguration("strategy %s has no replication profile", s)
	default:
		return StrategyProfile{}, NewErrInvalidConfiguration("unknown strategy %q", s)
	}
}

// CheckCompatibility rejects strategy/target combinations the planner cannot model.
func CheckCompatibility(s Strategy, target TargetProfile) error {
	if _, err := ParseStrategy(string(s)); err != nil {
		return err
	}
	if s != StrategyRepurchase {
		return nil
	}
	switch target.Platform {
	case PlatformAWS, PlatformAzure, PlatformGCP, PlatformOther:
		return nil
	default:
		return NewErrInvalidConfiguration("strategy %s is not supported on %s target %q", s, target.Platform, target.Name)
	}
}
