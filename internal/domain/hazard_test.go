package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "🟠 Not Started", StatusNotStarted.Label())
	assert.Equal(t, "🟡 In Progress", StatusInProgress.Label())
	assert.Equal(t, "🟢 Completed", StatusCompleted.Label())

	// Unknown values fall through as-is.
	assert.Equal(t, "Archived", Status("Archived").Label())
}

func TestFilterByStatus(t *testing.T) {
	reports := []HazardReport{
		{ID: 1, Status: StatusNotStarted},
		{ID: 2, Status: StatusInProgress},
		{ID: 3, Status: StatusCompleted},
		{ID: 4, Status: StatusNotStarted},
	}

	got := FilterByStatus(reports, StatusNotStarted)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)

	// Multiple statuses preserve original order across groups.
	got = FilterByStatus(reports, StatusCompleted, StatusInProgress)
	assert.Equal(t, []int64{2, 3}, []int64{got[0].ID, got[1].ID})

	// Input slice stays untouched.
	assert.Len(t, reports, 4)

	assert.Empty(t, FilterByStatus(reports))
	assert.Empty(t, FilterByStatus(nil, StatusCompleted))
}

func TestAccessibilityColorCoversAllLevels(t *testing.T) {
	for _, level := range AccessibilityLevels {
		assert.NotEmpty(t, AccessibilityColor[level], "missing color for %q", level)
	}
}
