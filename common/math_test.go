package common

import (
	"math"
	"testing"
)

func TestFootprintDistance(t *testing.T) {
	cases := []struct {
		name string
		args [8]int
		want float64
	}{
		{"same_tile", [8]int{2, 2, 1, 1, 2, 2, 1, 1}, 0},
		{"horizontal", [8]int{0, 0, 1, 1, 3, 0, 1, 1}, 3},
		{"diagonal", [8]int{0, 0, 1, 1, 3, 4, 1, 1}, 5},
		{"wide_source_touches", [8]int{0, 0, 3, 1, 2, 0, 1, 1}, 0},
		{"wide_target", [8]int{0, 5, 1, 1, -2, 0, 5, 1}, 5},
		{"zero_size_counts_as_one", [8]int{0, 0, 0, 0, 1, 0, 0, 0}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := c.args
			got := FootprintDistance(a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7])
			if math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Fatalf("clamp out of range")
	}
}
