package domain

type RoutePoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AnnotatedPoint is one route point with its accessibility classification
// and, occasionally, a human-readable reason for the divergence from the
// original route.
type AnnotatedPoint struct {
	Point         RoutePoint         `json:"point"`
	Accessibility AccessibilityLevel `json:"accessibility"`
	Color         string             `json:"color"`
	Reason        string             `json:"reason,omitempty"`
}

// RouteStep is one leg step as returned by the directions provider. The
// instruction text may contain HTML markup; narration text is cleaned before
// synthesis.
type RouteStep struct {
	Instructions string `json:"instructions"`
	DistanceText string `json:"distance"`
	DurationText string `json:"duration"`
}

// Route is a decoded walking route from the directions provider.
type Route struct {
	Points          []RoutePoint `json:"-"`
	Steps           []RouteStep  `json:"steps"`
	DurationSeconds int          `json:"duration_seconds"`
}

// AnnotatedRoute is the renderable form consumed by the map overlay.
type AnnotatedRoute struct {
	Points          []AnnotatedPoint `json:"points"`
	Steps           []RouteStep      `json:"steps"`
	DurationSeconds int              `json:"duration_seconds"`
	DurationText    string           `json:"duration_text"`
}

type RouteRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// PlaceSuggestion is one autocomplete candidate from the place-suggestion
// provider.
type PlaceSuggestion struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}
