package poker

import (
	"fmt"
	"strings"

	"github.com/beldmian/pokergto/cfr"
)

// Combo is a specific two-card holding with a range weight, the
// concrete type Range parses strings into.
type Combo struct {
	Hand   Hand
	Weight float64
}

// Range is an ordered list of weighted combos. The zero value is an
// empty range.
type Range []Combo

// ParseRange parses a comma-separated range string into a Range with
// weight 1.0 per combo. Supported notation:
//
//	"AA"        pair, 6 combos
//	"AKs"       suited, 4 combos
//	"AKo"       offsuit, 12 combos
//	"KK-JJ"     pair range
//	"AKs-ATs"   suited range, first rank fixed
//	"AA,KK,AKs" comma-separated union
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty range string")
	}

	var combos Range
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var hands []Hand
		var err error
		if strings.Contains(part, "-") {
			hands, err = parseRangeWithDash(part)
		} else {
			hands, err = parseSingleHand(part)
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", part, err)
		}

		for _, h := range hands {
			combos = append(combos, Combo{Hand: h, Weight: 1.0})
		}
	}

	if len(combos) == 0 {
		return nil, fmt.Errorf("range %q contains no combos", s)
	}

	return combos, nil
}

func parseSingleHand(s string) ([]Hand, error) {
	if len(s) < 2 || len(s) > 3 {
		return nil, fmt.Errorf("invalid hand notation %q", s)
	}

	r1, err := parseRank(s[0])
	if err != nil {
		return nil, err
	}
	r2, err := parseRank(s[1])
	if err != nil {
		return nil, err
	}

	suited := false
	if len(s) == 3 {
		if r1 == r2 {
			return nil, fmt.Errorf("pair %q cannot carry a suited/offsuit indicator", s)
		}
		switch s[2] {
		case 's', 'S':
			suited = true
		case 'o', 'O':
			suited = false
		default:
			return nil, fmt.Errorf("invalid suited/offsuit indicator %q", string(s[2]))
		}
	} else if r1 != r2 {
		return nil, fmt.Errorf("ambiguous hand %q: use 's' or 'o'", s)
	}

	return generateHands(r1, r2, suited), nil
}

func parseHandComponents(s string) (Rank, Rank, bool, error) {
	if len(s) < 2 || len(s) > 3 {
		return 0, 0, false, fmt.Errorf("invalid hand notation %q", s)
	}
	r1, err := parseRank(s[0])
	if err != nil {
		return 0, 0, false, err
	}
	r2, err := parseRank(s[1])
	if err != nil {
		return 0, 0, false, err
	}

	suited := false
	if len(s) == 3 {
		if r1 == r2 {
			return 0, 0, false, fmt.Errorf("pair %q cannot carry a suited/offsuit indicator", s)
		}
		switch s[2] {
		case 's', 'S':
			suited = true
		case 'o', 'O':
			suited = false
		default:
			return 0, 0, false, fmt.Errorf("invalid suited/offsuit indicator %q", string(s[2]))
		}
	} else if r1 != r2 {
		return 0, 0, false, fmt.Errorf("ambiguous hand %q: use 's' or 'o'", s)
	}

	return r1, r2, suited, nil
}

func parseRangeWithDash(s string) ([]Hand, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range %q", s)
	}

	startR1, startR2, startSuited, err := parseHandComponents(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("start hand: %w", err)
	}
	endR1, endR2, endSuited, err := parseHandComponents(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("end hand: %w", err)
	}
	if startSuited != endSuited {
		return nil, fmt.Errorf("mismatched suited/offsuit in range %q", s)
	}

	var hands []Hand

	if startR1 == startR2 && endR1 == endR2 {
		for r := int(startR1); r >= int(endR1); r-- {
			hands = append(hands, generateHands(Rank(r), Rank(r), startSuited)...)
		}
		return hands, nil
	}

	if startR1 != endR1 {
		return nil, fmt.Errorf("range %q: first rank must match", s)
	}

	for r := int(startR2); r >= int(endR2); r-- {
		hands = append(hands, generateHands(startR1, Rank(r), startSuited)...)
	}
	return hands, nil
}

func generateHands(r1, r2 Rank, suited bool) []Hand {
	suits := []Suit{Spades, Hearts, Diamonds, Clubs}
	var hands []Hand

	switch {
	case r1 == r2:
		for i := 0; i < len(suits); i++ {
			for j := i + 1; j < len(suits); j++ {
				hands = append(hands, NewHand(NewCard(r1, suits[i]), NewCard(r2, suits[j])))
			}
		}
	case suited:
		for _, s := range suits {
			hands = append(hands, NewHand(NewCard(r1, s), NewCard(r2, s)))
		}
	default:
		for _, s1 := range suits {
			for _, s2 := range suits {
				if s1 != s2 {
					hands = append(hands, NewHand(NewCard(r1, s1), NewCard(r2, s2)))
				}
			}
		}
	}

	return hands
}

// RemoveBlockers returns the subset of r whose combos share no card
// with any card in blockers.
func (r Range) RemoveBlockers(blockers []Card) Range {
	out := make(Range, 0, len(r))
	for _, c := range r {
		blocked := false
		for _, b := range blockers {
			if c.Hand.SharesCard(b) {
				blocked = true
				break
			}
		}
		if !blocked {
			out = append(out, c)
		}
	}
	return out
}

// ToWeightedRange converts r into the cfr package's opaque sampling
// view: one HandCombo per combo, keyed by its two-card hand string
// (e.g. "AsKs") with the two underlying cards recorded for blocker
// filtering.
func (r Range) ToWeightedRange() cfr.WeightedRange {
	out := make(cfr.WeightedRange, len(r))
	for i, c := range r {
		out[i] = cfr.HandCombo{
			Key:      c.Hand.String(),
			CardKeys: [2]string{c.Hand.Card1.Key(), c.Hand.Card2.Key()},
			Weight:   c.Weight,
		}
	}
	return out
}

// BlockerSet builds the cfr package's opaque blocker set from a list
// of cards (hero's hole cards plus the board).
func BlockerSet(cards ...Card) map[string]struct{} {
	set := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		set[c.Key()] = struct{}{}
	}
	return set
}

// HandFromCombo reconstructs the concrete Hand behind a cfr package
// HandCombo, undoing ToWeightedRange's opaque encoding.
func HandFromCombo(combo cfr.HandCombo) (Hand, error) {
	c1, err := ParseCard(combo.CardKeys[0])
	if err != nil {
		return Hand{}, fmt.Errorf("decoding combo %q: %w", combo.Key, err)
	}
	c2, err := ParseCard(combo.CardKeys[1])
	if err != nil {
		return Hand{}, fmt.Errorf("decoding combo %q: %w", combo.Key, err)
	}
	return NewHand(c1, c2), nil
}
