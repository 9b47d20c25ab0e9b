package cfr

import (
	"github.com/pkg/errors"

	"github.com/beldmian/pokergto/internal/f64"
)

// RegretTable accumulates per-action cumulative regret and
// reach-weighted strategy sums keyed by InfoSetKey, and derives
// instantaneous and average strategies from them via regret matching.
//
// A RegretTable is owned by exactly one Session for the lifetime of a
// single Solve call; it carries no state between calls.
type RegretTable struct {
	entries map[InfoSetKey]*regretEntry
}

// NewRegretTable returns an empty table.
func NewRegretTable() *RegretTable {
	return &RegretTable{
		entries: make(map[InfoSetKey]*regretEntry),
	}
}

type regretEntry struct {
	regretSum   []float64
	strategySum []float64
}

func newRegretEntry(nActions int) *regretEntry {
	return &regretEntry{
		regretSum:   make([]float64, nActions),
		strategySum: make([]float64, nActions),
	}
}

// RegretMatching converts cumulative regrets into a strategy: the
// positive part of regret, L1-normalized. All-zero or all-negative
// input yields the uniform distribution.
func RegretMatching(regrets []float64) []float64 {
	strategy := make([]float64, len(regrets))
	copy(strategy, regrets)
	f64.MakePositive(strategy)

	total := f64.Sum(strategy)
	if total > 0 {
		f64.ScalUnitary(1.0/total, strategy)
		return strategy
	}

	return uniformDist(len(regrets))
}

func uniformDist(n int) []float64 {
	dist := make([]float64, n)
	if n == 0 {
		return dist
	}
	p := 1.0 / float64(n)
	f64.AddConst(p, dist)
	return dist
}

// GetStrategy returns the current regret-matching strategy for key. If
// the key is absent, it behaves as if its regret vector were all
// zero (returning uniform) but does not insert it.
func (t *RegretTable) GetStrategy(key InfoSetKey, nActions int) []float64 {
	e, ok := t.entries[key]
	if !ok {
		return uniformDist(nActions)
	}

	if err := t.checkActionCount(e, nActions); err != nil {
		panic(err)
	}

	return RegretMatching(e.regretSum)
}

// UpdateRegrets applies per-action instantaneous regrets to key,
// weighted implicitly by the reach at which they were observed, and
// accumulates the strategy sum used for the average strategy. The
// strategy added to the sum is computed against the pre-update regret
// snapshot, per the regret-matching contract.
func (t *RegretTable) UpdateRegrets(key InfoSetKey, deltas []float64, reachWeight float64) error {
	e, ok := t.entries[key]
	if !ok {
		e = newRegretEntry(len(deltas))
		t.entries[key] = e
	}

	if err := t.checkActionCount(e, len(deltas)); err != nil {
		return err
	}

	currentStrategy := RegretMatching(e.regretSum)

	f64.Add(e.regretSum, deltas)
	if !f64.AllFinite(e.regretSum) {
		return errors.Wrapf(ErrConvergenceFailure, "non-finite regret at info-set %+v", key)
	}

	for i, p := range currentStrategy {
		e.strategySum[i] += reachWeight * p
	}

	return nil
}

// GetAverageStrategy returns S[key] / sum(S[key]), or uniform if the
// strategy sum is zero. It returns nil if the key is unseen.
func (t *RegretTable) GetAverageStrategy(key InfoSetKey) []float64 {
	e, ok := t.entries[key]
	if !ok {
		return nil
	}

	total := f64.Sum(e.strategySum)
	if total <= 0 {
		return uniformDist(len(e.strategySum))
	}

	avg := make([]float64, len(e.strategySum))
	f64.ScalUnitaryTo(avg, 1.0/total, e.strategySum)
	return avg
}

// NumInfoSets returns the number of distinct keys observed so far.
// This is a diagnostic quantity, not a contractual output.
func (t *RegretTable) NumInfoSets() int {
	return len(t.entries)
}

// Keys returns a snapshot of the currently observed info-set keys.
func (t *RegretTable) Keys() []InfoSetKey {
	keys := make([]InfoSetKey, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	return keys
}

func (t *RegretTable) checkActionCount(e *regretEntry, nActions int) error {
	if len(e.regretSum) != nActions {
		return errors.Wrapf(ErrInvalidGameState,
			"info-set has %d actions but caller supplied %d", len(e.regretSum), nActions)
	}
	return nil
}
