package cfr

import "math"

// ConvergenceTracker snapshots instantaneous strategies across checks
// and reports the maximum absolute per-action change since the prior
// snapshot. It is owned by exactly one Session.
type ConvergenceTracker struct {
	previous   map[InfoSetKey][]float64
	first      bool
	lastMetric float64
}

// NewConvergenceTracker returns a tracker with no prior snapshot.
func NewConvergenceTracker() *ConvergenceTracker {
	return &ConvergenceTracker{
		previous:   make(map[InfoSetKey][]float64),
		first:      true,
		lastMetric: 1.0,
	}
}

// CheckConvergence computes the current instantaneous strategy for
// every key in table, compares it against the previous snapshot
// (missing keys on either side are treated as uniform), replaces the
// snapshot, and returns the maximum absolute per-action change. The
// first call after construction always returns 1.0, preventing
// spurious early termination before any history has accumulated.
func (c *ConvergenceTracker) CheckConvergence(table *RegretTable) float64 {
	if c.first {
		c.first = false
		c.snapshot(table)
		c.lastMetric = 1.0
		return c.lastMetric
	}

	current := make(map[InfoSetKey][]float64, len(table.entries))
	var maxDiff float64

	for key, e := range table.entries {
		nActions := len(e.regretSum)
		cur := RegretMatching(e.regretSum)
		current[key] = cur

		prev, ok := c.previous[key]
		if !ok {
			prev = uniformDist(nActions)
		}

		maxDiff = math.Max(maxDiff, maxAbsDiff(cur, prev))
	}

	// Keys that vanished from the table (never happens today, since
	// entries are never removed, but checked for completeness) still
	// contribute the comparison against uniform.
	for key, prev := range c.previous {
		if _, ok := current[key]; ok {
			continue
		}
		cur := uniformDist(len(prev))
		maxDiff = math.Max(maxDiff, maxAbsDiff(cur, prev))
	}

	c.previous = current
	c.lastMetric = maxDiff
	return maxDiff
}

// IsConverged reports whether the most recently computed
// CheckConvergence metric is below threshold.
func (c *ConvergenceTracker) IsConverged(threshold float64) bool {
	return c.lastMetric < threshold
}

// LastMetric returns the most recently computed convergence metric.
func (c *ConvergenceTracker) LastMetric() float64 {
	return c.lastMetric
}

func (c *ConvergenceTracker) snapshot(table *RegretTable) {
	for key, e := range table.entries {
		c.previous[key] = RegretMatching(e.regretSum)
	}
}

func maxAbsDiff(a, b []float64) float64 {
	var maxDiff float64
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}
