// Package estimation is the migration scenario planning engine.
//
// A scenario is a set of virtual machines, a destination TargetProfile and a migration Strategy.
// The Engine runs the duration and cost calculators, then the risk assessor, then the
// recommendation scorer, and returns the results as a single Outputs value. The package performs
// no I/O and keeps no shared mutable state, so scenarios can be evaluated concurrently.
package estimation
