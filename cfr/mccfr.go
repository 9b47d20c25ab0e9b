package cfr

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/beldmian/pokergto/internal/f64"
)

// LegalAction is the minimal view of a legal action the MCCFR engine
// needs in order to compute its counterfactual value. Concrete action
// types (fold, check, call, bet, raise, all-in) are supplied by the
// caller's action enumerator; the engine treats them opaquely beyond
// this interface.
type LegalAction interface {
	// IsFold reports whether this action immediately forfeits the
	// pot with payoff 0, per spec's Fold payoff rule.
	IsFold() bool

	// Showdown returns the pot size after this action is taken and
	// the amount hero has committed if hero loses at showdown, given
	// the decision point's pot, effective stack and amount to call.
	// It is consulted for every non-fold action.
	Showdown(potSize, effectiveStack, toCall float64) (potAfter, heroCommit float64)
}

// EvaluationFunc is the opaque evaluation oracle of spec §1: given a
// sampled villain combo, it returns hero's {win, tie, lose}
// probability breakdown against the fixed hero hand and board baked
// into the closure by the caller.
type EvaluationFunc func(villain HandCombo) (win, tie, lose float64)

// DecisionPoint is the game_state input to Solve: everything the
// engine needs about the single decision hero faces, in the core's
// own vocabulary (no dependency on any concrete card/hand/range type).
type DecisionPoint struct {
	// HeroHandCanonical is hero's hole cards in canonical form; used
	// only as the hand component of the info-set key.
	HeroHandCanonical string
	PotSize           float64
	EffectiveStack    float64
	ToCall            float64
	// Position is an opaque position label (e.g. "IP" or "OOP").
	Position string

	VillainRange WeightedRange
	// Blockers is the set of card keys (hero hand + board) that
	// exclude a villain combo from being sampled.
	Blockers map[string]struct{}

	Actions  []LegalAction
	Evaluate EvaluationFunc
}

// ActionResult is one row of a StrategyReport.
type ActionResult struct {
	Action    LegalAction
	Frequency float64
	EV        float64
}

// StrategyReport is the result of a successful Solve call.
type StrategyReport struct {
	Actions            []ActionResult
	IterationsExecuted uint32
	Convergence        float64
}

// Session owns the Sampler, RegretTable and ConvergenceTracker for a
// single Solve call, plus the two []float64 scratch buffers
// (counterfactual values and regret deltas) runIteration overwrites on
// every pass. Both are sized once to the decision point's action
// count and reused for the life of the session, since that count
// never changes within a single Solve call. Session is created fresh
// at the start of Solve, mutated only by the engine, and discarded at
// return; no state persists between calls.
type Session struct {
	regrets *RegretTable
	sampler *Sampler
	tracker *ConvergenceTracker
	cfv     []float64
	delta   []float64
}

func newSession(seed *uint64, nActions int) *Session {
	return &Session{
		regrets: NewRegretTable(),
		sampler: NewSampler(seed),
		tracker: NewConvergenceTracker(),
		cfv:     make([]float64, nActions),
		delta:   make([]float64, nActions),
	}
}

// Solve computes a GTO mixed strategy for the single decision point
// described by dp, using external-sampling MCCFR per spec §4.4.
func Solve(ctx context.Context, dp DecisionPoint, config Config) (StrategyReport, error) {
	if err := validate(dp, config); err != nil {
		return StrategyReport{}, err
	}

	n := len(dp.Actions)
	sess := newSession(config.Seed, n)
	key := NewInfoSetKey(dp.HeroHandCanonical, dp.EffectiveStack, dp.PotSize, dp.Position)

	var executed uint32
	for i := uint32(1); i <= config.Iterations; i++ {
		if err := sess.runIteration(ctx, dp, key, n, config.SamplesPerIteration); err != nil {
			if errors.Is(err, errNonFiniteValue) || errors.Is(err, ErrConvergenceFailure) {
				return StrategyReport{}, &ConvergenceFailureError{
					Iterations: i,
					Metric:     sess.tracker.LastMetric(),
					cause:      err,
				}
			}
			return StrategyReport{}, err
		}
		executed = i

		if i%convergenceCheckInterval == 0 {
			metric := sess.tracker.CheckConvergence(sess.regrets)
			if sess.tracker.IsConverged(config.ConvergenceThreshold) {
				glog.V(1).Infof("converged after %d iterations (metric=%g)", i, metric)
				break
			}
		}
	}

	finalMetric := sess.tracker.CheckConvergence(sess.regrets)
	glog.V(2).Infof("solve finished: %d iterations, %d infosets, convergence=%g",
		executed, sess.regrets.NumInfoSets(), finalMetric)

	report, err := sess.extractStrategy(ctx, dp, key, n, executed, finalMetric, config)
	if err != nil {
		return StrategyReport{}, err
	}

	return report, nil
}

// errNonFiniteValue marks a counterfactual value that failed the
// finite check in runIteration, so Solve can attach iteration and
// metric context before returning a ConvergenceFailureError. A
// non-finite regret caught downstream, inside UpdateRegrets, surfaces
// as ErrConvergenceFailure instead; Solve treats both sentinels the
// same way.
var errNonFiniteValue = errors.New("non-finite counterfactual value")

func validate(dp DecisionPoint, config Config) error {
	if config.Iterations == 0 {
		return errors.Wrap(ErrInvalidGameState, "iterations must be > 0")
	}
	if config.SamplesPerIteration <= 0 {
		return errors.Wrap(ErrInvalidGameState, "samples_per_iteration must be > 0")
	}
	if config.ConvergenceThreshold <= 0 {
		return errors.Wrap(ErrInvalidGameState, "convergence_threshold must be > 0")
	}
	if dp.PotSize <= 0 {
		return errors.Wrap(ErrInvalidGameState, "pot_size must be > 0")
	}
	if dp.EffectiveStack <= 0 {
		return errors.Wrap(ErrInvalidGameState, "effective_stack must be > 0")
	}
	if dp.ToCall < 0 || dp.ToCall > dp.EffectiveStack {
		return errors.Wrapf(ErrInvalidGameState,
			"to_call (%g) must be in [0, effective_stack (%g)]", dp.ToCall, dp.EffectiveStack)
	}
	if len(dp.Actions) == 0 {
		return errors.WithStack(ErrNoValidActions)
	}
	return nil
}

// runIteration performs one external-sampling MCCFR iteration: sample
// m villain hands (owning goroutine only), evaluate each in parallel,
// then serially compute cfv[a], the node value, per-action regrets,
// and apply the single regret-table update for this iteration.
func (sess *Session) runIteration(ctx context.Context, dp DecisionPoint, key InfoSetKey, n, m int) error {
	samples, err := sess.sampler.SampleVillainHands(dp.VillainRange, dp.Blockers, m)
	if err != nil {
		return err
	}

	results, err := evaluateSamples(ctx, dp.Evaluate, samples)
	if err != nil {
		return err
	}

	sigma := sess.regrets.GetStrategy(key, n)
	cfv := sess.cfv

	for a, action := range dp.Actions {
		cfv[a] = actionCounterfactualValue(action, dp, samples, results)
	}

	if !f64.AllFinite(cfv) {
		return errNonFiniteValue
	}

	var nodeValue float64
	for a := range dp.Actions {
		nodeValue += sigma[a] * cfv[a]
	}

	delta := sess.delta
	for a := range dp.Actions {
		delta[a] = cfv[a] - nodeValue
	}

	if err := sess.regrets.UpdateRegrets(key, delta, 1.0); err != nil {
		return err
	}

	return nil
}

// showdownResult is the oracle's {win, tie, lose} breakdown for one
// sampled villain combo.
type showdownResult struct {
	win, tie, lose float64
	weight         float64
}

// evaluateSamples runs the evaluation oracle over every sampled
// villain combo. The oracle calls are independent of one another and
// independent of the action being considered, so they are fanned out
// across a worker pool; the sampler itself is never touched here.
func evaluateSamples(ctx context.Context, evaluate EvaluationFunc, samples WeightedRange) ([]showdownResult, error) {
	results := make([]showdownResult, len(samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelism())

	for i, combo := range samples {
		i, combo := i, combo
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			win, tie, lose := evaluate(combo)
			results[i] = showdownResult{win: win, tie: tie, lose: lose, weight: combo.Weight}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "evaluating sampled villain hands")
	}

	return results, nil
}

// actionCounterfactualValue implements spec §4.4.1 step 3: the
// weighted-average payoff of taking action across all sampled villain
// combos.
func actionCounterfactualValue(action LegalAction, dp DecisionPoint, samples WeightedRange, results []showdownResult) float64 {
	if action.IsFold() {
		return 0.0
	}

	potAfter, heroCommit := action.Showdown(dp.PotSize, dp.EffectiveStack, dp.ToCall)

	var weightedPayoff, totalWeight float64
	for _, r := range results {
		payoff := potAfter*r.win + (potAfter/2)*r.tie - heroCommit*r.lose
		weightedPayoff += r.weight * payoff
		totalWeight += r.weight
	}

	if totalWeight == 0 {
		return 0.0
	}

	return weightedPayoff / totalWeight
}

// extractStrategy implements spec §4.4.3: read the average strategy,
// then recompute a stable EV per action with a fresh, larger sample.
func (sess *Session) extractStrategy(ctx context.Context, dp DecisionPoint, key InfoSetKey, n int, executed uint32, metric float64, config Config) (StrategyReport, error) {
	avg := sess.regrets.GetAverageStrategy(key)
	if avg == nil {
		avg = uniformDist(n)
	}

	finalSampleSize := finalEVSampleMultiplier * config.SamplesPerIteration
	finalSamples, err := sess.sampler.SampleVillainHands(dp.VillainRange, dp.Blockers, finalSampleSize)
	if err != nil {
		return StrategyReport{}, err
	}

	results, err := evaluateSamples(ctx, dp.Evaluate, finalSamples)
	if err != nil {
		return StrategyReport{}, err
	}

	actions := make([]ActionResult, n)
	for a, action := range dp.Actions {
		ev := actionCounterfactualValue(action, dp, finalSamples, results)
		actions[a] = ActionResult{
			Action:    action,
			Frequency: avg[a],
			EV:        ev,
		}
	}

	return StrategyReport{
		Actions:            actions,
		IterationsExecuted: executed,
		Convergence:        metric,
	}, nil
}

func maxParallelism() int {
	return 8
}
