package waves

import (
	"slices"

	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
)

// applyDependencies replaces the dependency set of every wave with the caller-supplied one.
// Waves absent from deps get no dependency.
func applyDependencies(waves []estimation.Wave, deps map[int][]int) error {
	if err := ValidateDependencies(len(waves), deps); err != nil {
		return err
	}
	for i := range waves {
		d := slices.Clone(deps[waves[i].Number])
		slices.Sort(d)
		waves[i].DependsOn = slices.Compact(d)
		if waves[i].DependsOn == nil {
			waves[i].DependsOn = []int{}
		}
	}
	return nil
}

// ValidateDependencies checks that deps only references waves 1..waveCount and is acyclic.
func ValidateDependencies(waveCount int, deps map[int][]int) error {
	inDegree := make(map[int]int, waveCount)
	dependents := make(map[int][]int, waveCount)
	for n := 1; n <= waveCount; n++ {
		inDegree[n] = 0
	}

	for wave, requires := range deps {
		if wave < 1 || wave > waveCount {
			return estimation.NewErrInvalidDependencyGraph("wave %d does not exist", wave)
		}
		for _, r := range slices.Compact(slices.Sorted(slices.Values(requires))) {
			if r < 1 || r > waveCount {
				return estimation.NewErrInvalidDependencyGraph("wave %d depends on missing wave %d", wave, r)
			}
			if r == wave {
				return estimation.NewErrInvalidDependencyGraph("wave %d depends on itself", wave)
			}
			dependents[r] = append(dependents[r], wave)
			inDegree[wave]++
		}
	}

	// Kahn's algorithm
	queue := []int{}
	for n := 1; n <= waveCount; n++ {
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}
	visited := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range dependents[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if visited != waveCount {
		var cyclic []int
		for n := 1; n <= waveCount; n++ {
			if inDegree[n] > 0 && onCycle(n, dependents) {
				cyclic = append(cyclic, n)
			}
		}
		return estimation.NewErrInvalidDependencyGraph("circular dependency detected involving waves %v", cyclic)
	}
	return nil
}

// onCycle reports whether wave can reach itself through its dependents.
// Waves left over by Kahn's algorithm only because they sit downstream of a cycle cannot.
func onCycle(wave int, dependents map[int][]int) bool {
	seen := map[int]bool{}
	stack := slices.Clone(dependents[wave])
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == wave {
			return true
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, dependents[n]...)
	}
	return false
}
