package cfr

import "testing"

func combo(key string, c1, c2 string, weight float64) HandCombo {
	return HandCombo{Key: key, CardKeys: [2]string{c1, c2}, Weight: weight}
}

func TestSampleVillainHandsRemovesBlockers(t *testing.T) {
	seed := uint64(42)
	sampler := NewSampler(&seed)

	r := WeightedRange{
		combo("AhAd", "Ah", "Ad", 1),
		combo("KhKd", "Kh", "Kd", 1),
		combo("QhQd", "Qh", "Qd", 1),
	}
	blockers := map[string]struct{}{"Ah": {}}

	drawn, err := sampler.SampleVillainHands(r, blockers, 50)
	if err != nil {
		t.Fatalf("SampleVillainHands: %v", err)
	}
	for _, c := range drawn {
		if c.Key == "AhAd" {
			t.Errorf("blocked combo %q was sampled", c.Key)
		}
	}
}

func TestSampleVillainHandsEmptyAfterBlockers(t *testing.T) {
	sampler := NewSampler(nil)
	r := WeightedRange{combo("AhAd", "Ah", "Ad", 1)}
	blockers := map[string]struct{}{"Ah": {}}

	if _, err := sampler.SampleVillainHands(r, blockers, 10); err == nil {
		t.Error("expected an error when no combo survives blocker removal")
	}
}

func TestSampleVillainHandsReproducibleWithSameSeed(t *testing.T) {
	r := WeightedRange{
		combo("AhAd", "Ah", "Ad", 1),
		combo("KhKd", "Kh", "Kd", 2),
		combo("QhQd", "Qh", "Qd", 3),
	}

	seed := uint64(7)
	s1 := NewSampler(&seed)
	s2 := NewSampler(&seed)

	d1, err := s1.SampleVillainHands(r, nil, 200)
	if err != nil {
		t.Fatalf("SampleVillainHands: %v", err)
	}
	d2, err := s2.SampleVillainHands(r, nil, 200)
	if err != nil {
		t.Fatalf("SampleVillainHands: %v", err)
	}

	for i := range d1 {
		if d1[i].Key != d2[i].Key {
			t.Fatalf("draw %d differs between identically seeded samplers: %q vs %q", i, d1[i].Key, d2[i].Key)
		}
	}
}

func TestSampleActionCategorical(t *testing.T) {
	seed := uint64(1)
	sampler := NewSampler(&seed)

	counts := make([]int, 3)
	p := []float64{0.2, 0.3, 0.5}
	for i := 0; i < 10000; i++ {
		counts[sampler.SampleAction(p)]++
	}

	for i, c := range counts {
		if c == 0 {
			t.Errorf("action %d was never sampled from %v", i, p)
		}
	}
}

func TestSampleActionTieBreaksToLastOnShortfall(t *testing.T) {
	sampler := NewSampler(nil)
	if got := sampler.SampleAction([]float64{0, 0, 0}); got != 2 {
		t.Errorf("expected shortfall to break to the last action, got %d", got)
	}
}
