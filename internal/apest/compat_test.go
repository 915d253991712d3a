package apest

import "testing"

func TestComplementaryExhaustive(t *testing.T) {
	for _, p := range All() {
		for _, s := range All() {
			dims := Complementary(p, s)
			if len(dims) == 0 {
				t.Errorf("Complementary(%s, %s) has no entry", p, s)
				continue
			}
			for _, d := range dims {
				if CanonicalIndex(d) < 0 {
					t.Errorf("Complementary(%s, %s) contains unknown dimension %q", p, s, d)
				}
				if d == p {
					t.Errorf("Complementary(%s, %s) contains the primary gift", p, s)
				}
			}
		}
	}
}

func TestComplementaryUnknownPair(t *testing.T) {
	if dims := Complementary("wisdom", Teaching); dims != nil {
		t.Errorf("Complementary(wisdom, teaching) = %v, want nil", dims)
	}
}

func TestComplementaryReturnsCopy(t *testing.T) {
	a := Complementary(Apostolic, Teaching)
	a[0] = "mutated"
	b := Complementary(Apostolic, Teaching)
	if b[0] == "mutated" {
		t.Error("Complementary returned a shared slice")
	}
}
