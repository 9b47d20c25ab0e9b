// Package eval implements the {win, tie, lose} evaluation oracle the
// cfr package consumes as an opaque collaborator, using the
// paulhankin/poker hand evaluator and, where the board is not yet
// complete, a run-out completion over the remaining deck.
package eval

import (
	"fmt"
	"math/rand"

	phpoker "github.com/paulhankin/poker"

	"github.com/beldmian/pokergto/cfr"
	"github.com/beldmian/pokergto/poker"
)

// exhaustiveRunoutLimit is the largest number of missing board cards
// for which every run-out is enumerated exactly. Above it (i.e. at
// preflop, five missing cards) enumeration is too large to be
// practical and sampledRunouts run-outs are Monte-Carlo sampled
// instead.
const exhaustiveRunoutLimit = 2

// sampledRunouts is the number of run-outs drawn when the board is
// not complete enough for exhaustive enumeration.
const sampledRunouts = 2000

// Evaluator computes showdown equity between two hole-card holdings
// on a (possibly incomplete) board.
type Evaluator struct {
	rng *rand.Rand
}

// NewEvaluator seeds the evaluator's run-out sampler from seed, or
// from entropy if seed is nil.
func NewEvaluator(seed *uint64) *Evaluator {
	var src rand.Source
	if seed != nil {
		src = rand.NewSource(int64(*seed))
	} else {
		src = rand.NewSource(rand.Int63())
	}
	return &Evaluator{rng: rand.New(src)}
}

// WinTieLose returns hero's probability of winning, tying, and losing
// against villain on board, completing the board by exhaustive
// enumeration or Monte Carlo sampling as needed.
func (e *Evaluator) WinTieLose(hero, villain poker.Hand, board []poker.Card) (win, tie, lose float64, err error) {
	missing := 5 - len(board)
	if missing < 0 || missing > 5 {
		return 0, 0, 0, fmt.Errorf("invalid board length %d", len(board))
	}

	dead := map[poker.Card]bool{
		hero.Card1: true, hero.Card2: true,
		villain.Card1: true, villain.Card2: true,
	}
	for _, c := range board {
		dead[c] = true
	}

	remaining := make([]poker.Card, 0, 52-len(dead))
	for _, c := range poker.FullDeck() {
		if !dead[c] {
			remaining = append(remaining, c)
		}
	}

	if missing == 0 {
		w, t, l, err := e.compare(hero, villain, board)
		if err != nil {
			return 0, 0, 0, err
		}
		return float64(w), float64(t), float64(l), nil
	}

	if missing <= exhaustiveRunoutLimit {
		return e.exhaustive(hero, villain, board, remaining, missing)
	}

	return e.sampled(hero, villain, board, remaining, missing)
}

func (e *Evaluator) exhaustive(hero, villain poker.Hand, board, remaining []poker.Card, missing int) (win, tie, lose float64, err error) {
	var total int
	var wins, ties, losses int

	combo := make([]int, missing)
	for i := range combo {
		combo[i] = i
	}

	for {
		full := make([]poker.Card, len(board), len(board)+missing)
		copy(full, board)
		for _, idx := range combo {
			full = append(full, remaining[idx])
		}

		w, t, l, cmpErr := e.compare(hero, villain, full)
		if cmpErr != nil {
			return 0, 0, 0, cmpErr
		}
		wins += w
		ties += t
		losses += l
		total++

		if !nextCombination(combo, len(remaining)) {
			break
		}
	}

	if total == 0 {
		return 0, 0, 0, fmt.Errorf("no run-outs available to complete the board")
	}
	return float64(wins) / float64(total), float64(ties) / float64(total), float64(losses) / float64(total), nil
}

func (e *Evaluator) sampled(hero, villain poker.Hand, board, remaining []poker.Card, missing int) (win, tie, lose float64, err error) {
	if len(remaining) < missing {
		return 0, 0, 0, fmt.Errorf("not enough cards left to complete the board")
	}

	var wins, ties, losses int

	shuffled := make([]poker.Card, len(remaining))
	copy(shuffled, remaining)

	for i := 0; i < sampledRunouts; i++ {
		e.rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		full := make([]poker.Card, len(board), len(board)+missing)
		copy(full, board)
		full = append(full, shuffled[:missing]...)

		w, t, l, cmpErr := e.compare(hero, villain, full)
		if cmpErr != nil {
			return 0, 0, 0, cmpErr
		}
		wins += w
		ties += t
		losses += l
	}

	return float64(wins) / float64(sampledRunouts), float64(ties) / float64(sampledRunouts), float64(losses) / float64(sampledRunouts), nil
}

// compare evaluates hero and villain against a complete 5-card board
// and returns (1,0,0), (0,1,0) or (0,0,1) for win, tie, lose.
func (e *Evaluator) compare(hero, villain poker.Hand, board []poker.Card) (win, tie, lose int, err error) {
	heroScore, err := score7(hero, board)
	if err != nil {
		return 0, 0, 0, err
	}
	villainScore, err := score7(villain, board)
	if err != nil {
		return 0, 0, 0, err
	}

	switch {
	case heroScore > villainScore:
		return 1, 0, 0, nil
	case heroScore < villainScore:
		return 0, 0, 1, nil
	default:
		return 0, 1, 0, nil
	}
}

// score7 returns the paulhankin/poker score of the best hand formed
// from hole and a complete 5-card board. Higher scores are better.
func score7(hole poker.Hand, board []poker.Card) (int16, error) {
	cards, err := poker.ToLib(append(hole.Cards(), board...))
	if err != nil {
		return 0, err
	}
	var a7 [7]phpoker.Card
	copy(a7[:], cards)
	return phpoker.Eval7(&a7), nil
}

// OracleFor fixes hero's hand and the board, returning the
// cfr.EvaluationFunc closure that evaluates any sampled villain combo
// against them. Decoding failures indicate a combo that did not come
// from this package's own range parsing and are treated as
// programming errors.
func (e *Evaluator) OracleFor(hero poker.Hand, board []poker.Card) cfr.EvaluationFunc {
	return func(villain cfr.HandCombo) (win, tie, lose float64) {
		villainHand, err := poker.HandFromCombo(villain)
		if err != nil {
			panic(fmt.Sprintf("decoding sampled combo: %v", err))
		}

		w, t, l, err := e.WinTieLose(hero, villainHand, board)
		if err != nil {
			panic(fmt.Sprintf("evaluating %v vs %v on %v: %v", hero, villainHand, board, err))
		}

		return w, t, l
	}
}

// nextCombination advances combo (a strictly increasing slice of
// indices into a universe of size n) to the next combination in
// lexicographic order, returning false once combo is exhausted.
func nextCombination(combo []int, n int) bool {
	k := len(combo)
	i := k - 1
	for i >= 0 && combo[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	combo[i]++
	for j := i + 1; j < k; j++ {
		combo[j] = combo[j-1] + 1
	}
	return true
}
