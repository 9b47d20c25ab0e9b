package cfr

import "testing"

func TestSprBucketFromSPR(t *testing.T) {
	cases := []struct {
		spr  float64
		want SprBucket
	}{
		{0, SprShort},
		{1.99, SprShort},
		{2, SprMedium},
		{4.99, SprMedium},
		{5, SprDeep},
		{9.99, SprDeep},
		{10, SprVeryDeep},
		{100, SprVeryDeep},
	}

	for _, c := range cases {
		if got := SprBucketFromSPR(c.spr); got != c.want {
			t.Errorf("SprBucketFromSPR(%g) = %v, want %v", c.spr, got, c.want)
		}
	}
}

func TestNewInfoSetKeySamePointsShareKey(t *testing.T) {
	a := NewInfoSetKey("AKs", 100, 50, "IP")
	b := NewInfoSetKey("AKs", 100, 50, "IP")
	if a != b {
		t.Errorf("expected equal keys, got %+v and %+v", a, b)
	}
}

func TestNewInfoSetKeyZeroPotIsShort(t *testing.T) {
	k := NewInfoSetKey("AA", 100, 0, "OOP")
	if k.SPR != SprShort {
		t.Errorf("expected SprShort for zero pot, got %v", k.SPR)
	}
}

func TestNewInfoSetKeyDistinguishesPosition(t *testing.T) {
	a := NewInfoSetKey("AA", 100, 50, "IP")
	b := NewInfoSetKey("AA", 100, 50, "OOP")
	if a == b {
		t.Error("expected keys with different positions to differ")
	}
}
