package domain

type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityModerate Severity = "Moderate"
	SeverityHigh     Severity = "High"
	SeveritySevere   Severity = "Severe"
)

// AccessibilityLevel describes ease of pedestrian passage, ordered from best
// to worst. The string values are stored verbatim in the hazards table.
type AccessibilityLevel string

const (
	EasilyAccessible     AccessibilityLevel = "Easily Accessible"
	ModeratelyAccessible AccessibilityLevel = "Moderately Accessible"
	Challenging          AccessibilityLevel = "Challenging"
	Inaccessible         AccessibilityLevel = "Inaccessible"
)

// AccessibilityLevels lists all levels in display order.
var AccessibilityLevels = []AccessibilityLevel{
	EasilyAccessible,
	ModeratelyAccessible,
	Challenging,
	Inaccessible,
}

// AccessibilityColor maps each level to the hex color used on route overlays.
var AccessibilityColor = map[AccessibilityLevel]string{
	EasilyAccessible:     "#32CD32",
	ModeratelyAccessible: "#1E90FF",
	Challenging:          "#FFD700",
	Inaccessible:         "#FF6347",
}

type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists the three lifecycle stages. Transitions between them are
// unrestricted: any status may move to any other.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

var statusLabels = map[Status]string{
	StatusNotStarted: "🟠 Not Started",
	StatusInProgress: "🟡 In Progress",
	StatusCompleted:  "🟢 Completed",
}

// Label returns the iconified display form of a status. Unknown values are
// returned as-is so a hand-edited table still renders.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// HazardReport is one reported sidewalk obstruction. ID is assigned by the
// store (count+1 at insertion, never reused); Date/Time are stamped at
// submission and immutable; Status is the only mutable field.
type HazardReport struct {
	ID            int64              `json:"id"`
	Description   string             `json:"description"`
	Severity      Severity           `json:"severity"`
	Accessibility AccessibilityLevel `json:"accessibility"`
	Address       string             `json:"address"`
	ImagePath     string             `json:"image_path,omitempty"`
	Date          string             `json:"date"` // YYYY-MM-DD
	Time          string             `json:"time"` // HH:MM:SS
	Status        Status             `json:"status"`
}

// FilterByStatus returns the reports whose status is in the given set,
// preserving the original order. Pure.
func FilterByStatus(reports []HazardReport, statuses ...Status) []HazardReport {
	want := make(map[Status]struct{}, len(statuses))
	for _, s := range statuses {
		want[s] = struct{}{}
	}
	out := make([]HazardReport, 0, len(reports))
	for _, r := range reports {
		if _, ok := want[r.Status]; ok {
			out = append(out, r)
		}
	}
	return out
}
