// Package calculators provides the concrete calculators of the estimation engine.
//
// Duration and Cost compute the timeline and the price of a VM set on a target profile,
// Risk classifies the scenario and Recommendation scores it. Each calculator is configured
// through functional options and is safe for concurrent use once constructed.
package calculators
