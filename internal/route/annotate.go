package route

import (
	"math/rand"

	"sidewalksafe/internal/domain"
)

// Classifier maps a route point to an accessibility level. The production
// wiring injects a placeholder random draw until a real sidewalk-condition
// model is available; the annotator itself never decides.
type Classifier func(domain.RoutePoint) domain.AccessibilityLevel

// RandomClassifier returns the placeholder: an unweighted draw over the four
// accessibility levels.
func RandomClassifier(rng *rand.Rand) Classifier {
	return func(domain.RoutePoint) domain.AccessibilityLevel {
		return domain.AccessibilityLevels[rng.Intn(len(domain.AccessibilityLevels))]
	}
}

// reasonProbability is the chance a point carries a divergence reason.
const reasonProbability = 0.5

// divergenceReasons is the fixed set of explanations for why a path differs
// from the original route.
var divergenceReasons = []string{
	"The original route had a road closure due to construction, and this route avoids the blocked area.",
	"Uneven pavement was present along the original route, so this alternate path is safer for you.",
	"There was a major pothole in the original route, so this route is smoother and safer.",
	"A vehicle accident caused a blockage on the original route, so this new route avoids the area.",
	"The original sidewalk was under repair, making it inaccessible, so this route is an alternative.",
	"The original route had flooding, so this route is a better option for walking.",
}

// Annotate classifies each point of a decoded path and, independently per
// point, attaches one divergence reason with probability reasonProbability.
// Pure transformation over the inputs; consumed only for display and
// narration.
func Annotate(path []domain.RoutePoint, classify Classifier, rng *rand.Rand) []domain.AnnotatedPoint {
	out := make([]domain.AnnotatedPoint, 0, len(path))
	for _, p := range path {
		level := classify(p)
		ap := domain.AnnotatedPoint{
			Point:         p,
			Accessibility: level,
			Color:         domain.AccessibilityColor[level],
		}
		if rng.Float64() < reasonProbability {
			ap.Reason = divergenceReasons[rng.Intn(len(divergenceReasons))]
		}
		out = append(out, ap)
	}
	return out
}
