package floret

import "fmt"

// Bounds are the configuration-driven limits the validator checks against.
// They vary by deployment and by performance profile.
type Bounds struct {
	MinPoints     int
	MaxPoints     int
	MaxAngleRange float64
}

// Validation is the tagged result of a parameter check. Message is empty
// when Valid is true.
type Validation struct {
	Valid   bool
	Message string
}

// Validate checks a parameter set against the given bounds. It is a total,
// side-effect-free function: it never panics and always returns a tagged
// result. Checks run in order and stop at the first failure:
//
//  1. angle_start < angle_end
//  2. angle_start >= 0 (sqrt of a negative angle is undefined)
//  3. sample_count >= MinPoints
//  4. sample_count <= MaxPoints
//  5. angle_end - angle_start <= MaxAngleRange
func Validate(angleStart, angleEnd float64, sampleCount int, b Bounds) Validation {
	if !(angleStart < angleEnd) {
		return Validation{Message: fmt.Sprintf(
			"angle start (%g) must be less than angle end (%g)", angleStart, angleEnd)}
	}
	if angleStart < 0 {
		return Validation{Message: fmt.Sprintf(
			"angle start (%g) must not be negative", angleStart)}
	}
	if sampleCount < b.MinPoints {
		return Validation{Message: fmt.Sprintf(
			"sample count (%d) is below the minimum of %d", sampleCount, b.MinPoints)}
	}
	if sampleCount > b.MaxPoints {
		return Validation{Message: fmt.Sprintf(
			"sample count (%d) exceeds the maximum of %d", sampleCount, b.MaxPoints)}
	}
	if angleEnd-angleStart > b.MaxAngleRange {
		return Validation{Message: fmt.Sprintf(
			"angle range (%g) exceeds the maximum of %g", angleEnd-angleStart, b.MaxAngleRange)}
	}
	return Validation{Valid: true}
}
