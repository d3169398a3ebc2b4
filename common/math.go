package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Distance returns the Euclidean distance between two tile coordinates.
func Distance(x1, y1, x2, y2 int) float64 {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return math.Sqrt(dx*dx + dy*dy)
}

// FootprintDistance returns the smallest Euclidean distance between any tile
// of the w1 x h1 area at (x1, y1) and any tile of the w2 x h2 area at (x2, y2).
func FootprintDistance(x1, y1, w1, h1, x2, y2, w2, h2 int) float64 {
	best := math.MaxFloat64
	for ay := y1; ay < y1+max(h1, 1); ay++ {
		for ax := x1; ax < x1+max(w1, 1); ax++ {
			for by := y2; by < y2+max(h2, 1); by++ {
				for bx := x2; bx < x2+max(w2, 1); bx++ {
					if d := Distance(ax, ay, bx, by); d < best {
						best = d
					}
				}
			}
		}
	}
	return best
}
