package analysis

import "math"

// JetWidth derives the jet full width (diameter) from one radial axial-
// velocity profile: the distance between the radial positions where the
// velocity drops to half the centerline value, assuming symmetry about the
// centerline. ok is false when the profile has no meaningful centerline
// jet (centerline velocity not strictly positive) or the half-velocity
// crossing does not occur inside the sampled range.
func JetWidth(r, u []float64) (float64, bool) {
	if len(r) < 3 || len(r) != len(u) {
		return 0, false
	}

	centerIdx := 0
	for i := range r {
		if math.Abs(r[i]) < math.Abs(r[centerIdx]) {
			centerIdx = i
		}
	}
	uCenter := u[centerIdx]
	if uCenter <= 0 {
		return 0, false
	}
	uHalf := uCenter / 2

	var rPos, uPos []float64
	for i := range r {
		if r[i] >= 0 {
			rPos = append(rPos, r[i])
			uPos = append(uPos, u[i])
		}
	}

	for i := 0; i < len(uPos)-1; i++ {
		if uPos[i] >= uHalf && uPos[i+1] < uHalf {
			t := (uHalf - uPos[i]) / (uPos[i+1] - uPos[i])
			rHalf := rPos[i] + t*(rPos[i+1]-rPos[i])
			return 2 * rHalf, true
		}
	}
	return 0, false
}
