package domain

// Rating bounds and defaults for generated questions.
const (
	DefaultRating = 1200
	RatingFloor   = 800
	RatingCeiling = 2400
	ratingSpread  = 200
)

// Rating is a clamped skill estimate with its surrounding range.
type Rating struct {
	Value int
	Min   int
	Max   int
}

// AssignRating clamps raw to [RatingFloor, RatingCeiling] and attaches the
// ±200 range. The range bounds themselves are not clamped.
func AssignRating(raw int) Rating {
	value := raw
	if value < RatingFloor {
		value = RatingFloor
	}
	if value > RatingCeiling {
		value = RatingCeiling
	}
	return Rating{
		Value: value,
		Min:   value - ratingSpread,
		Max:   value + ratingSpread,
	}
}
