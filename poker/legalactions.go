package poker

import "github.com/beldmian/pokergto/cfr"

// DefaultBetSizings is the pot-fraction ladder offered when the
// caller does not supply its own, a reasonable default bet/raise
// sizing set for a single decision point.
var DefaultBetSizings = []BetSize{
	PotFractionSize(0.33),
	PotFractionSize(0.75),
}

// LegalActions enumerates the actions available to hero at a decision
// point with the given amount to call, the configured bet/raise
// sizings, and whether an all-in option is exposed. Every sizing is
// offered as a bet or raise; effectiveStack is not consulted, so a
// sizing that commits the entire stack is still listed alongside the
// all-in when allowAllIn is set.
func LegalActions(toCall, effectiveStack float64, sizings []BetSize, allowAllIn bool) []cfr.LegalAction {
	if sizings == nil {
		sizings = DefaultBetSizings
	}

	var actions []cfr.LegalAction

	if toCall > 0 {
		actions = append(actions, NewFold(), NewCall())
		for _, size := range sizings {
			actions = append(actions, NewRaise(size))
		}
	} else {
		actions = append(actions, NewCheck())
		for _, size := range sizings {
			actions = append(actions, NewBet(size))
		}
	}

	if allowAllIn {
		actions = append(actions, NewAllIn())
	}

	return actions
}

// ActionsOf converts a slice of cfr.LegalAction back to concrete
// Action values, for reporting. Panics if any entry is not an Action;
// that can only happen if the caller passed a foreign LegalAction
// implementation to a DecisionPoint built from this package.
func ActionsOf(actions []cfr.LegalAction) []Action {
	out := make([]Action, len(actions))
	for i, a := range actions {
		out[i] = a.(Action)
	}
	return out
}
