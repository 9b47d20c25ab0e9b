package cfr

import (
	"math/rand"

	"github.com/pkg/errors"
)

// HandCombo is a hashable two-card holding together with a weight.
// CardKeys is the combo's two underlying cards, used only for blocker
// filtering; the core treats the combo itself (Key) opaquely.
type HandCombo struct {
	Key      string
	CardKeys [2]string
	Weight   float64
}

// WeightedRange is the minimal view of a villain range the Sampler
// needs: a list of combos with positive weight. It is the core's
// opaque view of the domain's Range type.
type WeightedRange []HandCombo

// Sampler wraps a deterministic pseudorandom source and performs the
// two sampling operations the engine needs: weighted draws of villain
// combos from a range, and categorical draws from an action
// distribution. A Sampler is owned by exactly one Session.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler seeds the sampler from the given 64-bit seed, or from
// entropy captured once at construction if seed is nil. For a fixed
// seed, fixed input, and fixed iteration schedule the sequence of
// draws - and therefore the entire solver output - is bit-identical.
func NewSampler(seed *uint64) *Sampler {
	var src rand.Source
	if seed != nil {
		src = rand.NewSource(int64(*seed))
	} else {
		src = rand.NewSource(rand.Int63())
	}

	return &Sampler{rng: rand.New(src)}
}

// SampleVillainHands draws n combos with replacement from rng,
// proportional to weight, after excluding any combo that shares a
// card with blockers (hero hand + board). Returns ErrEmptyRange if no
// combo survives blocker filtering. The returned weights are the
// original (unnormalized) range weights of the drawn combos.
func (s *Sampler) SampleVillainHands(r WeightedRange, blockers map[string]struct{}, n int) (WeightedRange, error) {
	filtered := make(WeightedRange, 0, len(r))
	for _, c := range r {
		if _, blocked := blockers[c.CardKeys[0]]; blocked {
			continue
		}
		if _, blocked := blockers[c.CardKeys[1]]; blocked {
			continue
		}
		if c.Weight > 0 {
			filtered = append(filtered, c)
		}
	}

	if len(filtered) == 0 {
		return nil, errors.WithStack(ErrEmptyRange)
	}

	totalWeight := 0.0
	for _, c := range filtered {
		totalWeight += c.Weight
	}

	drawn := make(WeightedRange, 0, n)
	for i := 0; i < n; i++ {
		target := s.rng.Float64() * totalWeight
		var acc float64
		chosen := filtered[len(filtered)-1]
		for _, c := range filtered {
			acc += c.Weight
			if acc >= target {
				chosen = c
				break
			}
		}
		drawn = append(drawn, chosen)
	}

	return drawn, nil
}

// SampleAction performs a categorical draw over p, where sum(p) is
// expected to equal 1 within a small tolerance. Ties (floating point
// shortfall of the cumulative sum) are broken by returning the last
// action, matching the generator order of the cumulative scan.
func (s *Sampler) SampleAction(p []float64) int {
	x := s.rng.Float64()
	var cumProb float64
	for i, prob := range p {
		cumProb += prob
		if cumProb > x {
			return i
		}
	}

	return len(p) - 1
}
