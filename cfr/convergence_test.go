package cfr

import "testing"

func TestConvergenceTrackerFirstCallReturnsOne(t *testing.T) {
	tracker := NewConvergenceTracker()
	table := NewRegretTable()
	key := NewInfoSetKey("AA", 100, 50, "IP")
	_ = table.UpdateRegrets(key, []float64{1, -1}, 1.0)

	if got := tracker.CheckConvergence(table); got != 1.0 {
		t.Errorf("first CheckConvergence = %g, want 1.0", got)
	}
	if tracker.IsConverged(0.5) {
		t.Error("first check must never report converged")
	}
}

func TestConvergenceTrackerDetectsStability(t *testing.T) {
	tracker := NewConvergenceTracker()
	table := NewRegretTable()
	key := NewInfoSetKey("AA", 100, 50, "IP")

	_ = table.UpdateRegrets(key, []float64{10, -10}, 1.0)
	tracker.CheckConvergence(table) // seeds the snapshot at 1.0

	// No further regret updates: the instantaneous strategy is
	// unchanged, so the next check must report zero movement.
	metric := tracker.CheckConvergence(table)
	if metric != 0 {
		t.Errorf("expected metric 0 for an unchanged table, got %g", metric)
	}
	if !tracker.IsConverged(0.001) {
		t.Error("expected convergence once the strategy stops moving")
	}
}

func TestConvergenceTrackerTracksChange(t *testing.T) {
	tracker := NewConvergenceTracker()
	table := NewRegretTable()
	key := NewInfoSetKey("AA", 100, 50, "IP")

	_ = table.UpdateRegrets(key, []float64{1, -1}, 1.0)
	tracker.CheckConvergence(table)

	_ = table.UpdateRegrets(key, []float64{-100, 100}, 1.0)
	metric := tracker.CheckConvergence(table)
	if metric <= 0 {
		t.Errorf("expected a positive metric after a large strategy swing, got %g", metric)
	}
}
