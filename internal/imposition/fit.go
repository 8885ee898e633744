package imposition

import "math"

// fitEpsilon absorbs floating-point error when a quotient lands just below
// an exact integer, e.g. 0.9/0.3 evaluating to 2.9999999999999996.
const fitEpsilon = 1e-9

// maxExactInt is the largest integer magnitude a float64 represents exactly.
const maxExactInt = 1 << 53

// fit returns how many spans of size fit in available when neighbours are
// separated by spacing: n*size + (n-1)*spacing <= available, which is
// n <= (available+spacing)/(size+spacing).
func fit(available, size, spacing float64) int {
	if size <= 0 || available <= 0 {
		return 0
	}

	if isIntegral(available) && isIntegral(size) && isIntegral(spacing) {
		n := (int64(available) + int64(spacing)) / (int64(size) + int64(spacing))
		return clampCount(float64(n))
	}

	q := (available + spacing) / (size + spacing)
	return clampCount(math.Floor(q + fitEpsilon*math.Max(1, q)))
}

// clampCount converts a non-negative count to int, saturating just above
// MaxItemsPerPlate so callers can detect oversize grids without overflow.
func clampCount(n float64) int {
	if n <= 0 {
		return 0
	}
	if n > MaxItemsPerPlate {
		return MaxItemsPerPlate + 1
	}
	return int(n)
}

func isIntegral(v float64) bool {
	return v == math.Trunc(v) && math.Abs(v) < maxExactInt
}
