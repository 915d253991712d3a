package apest

import "testing"

func TestCanonicalIndex(t *testing.T) {
	tests := []struct {
		dim  Dimension
		want int
	}{
		{Apostolic, 0},
		{Prophetic, 1},
		{Evangelistic, 2},
		{Shepherding, 3},
		{Teaching, 4},
		{"unknown", -1},
	}

	for _, tt := range tests {
		if got := CanonicalIndex(tt.dim); got != tt.want {
			t.Errorf("CanonicalIndex(%s) = %d, want %d", tt.dim, got, tt.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, d := range All() {
		got, err := Parse(string(d))
		if err != nil {
			t.Fatalf("Parse(%s): %v", d, err)
		}
		if got != d {
			t.Errorf("Parse(%s) = %s", d, got)
		}
	}

	if _, err := Parse("healing"); err == nil {
		t.Error("Parse(healing) succeeded, want error")
	}
}
