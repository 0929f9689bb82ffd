package domain

import "strings"

// RemediationPlan is the generated project plan for one hazard, with the
// budget span opportunistically extracted from the free-form text.
type RemediationPlan struct {
	HazardID        int64  `json:"hazard_id"`
	Plan            string `json:"plan"`
	EstimatedBudget string `json:"estimated_budget,omitempty"`
}

// ExtractBudget scans generated plan text for a currency span following the
// phrase "estimated budget". The span must open with "$" and terminate with
// "USD"; anything less is not a budget, and ok is false. No further parsing
// intent is assumed: the span is returned as written, minus the trailing
// "USD" marker.
func ExtractBudget(plan string) (string, bool) {
	idx := strings.Index(strings.ToLower(plan), "estimated budget")
	if idx < 0 {
		return "", false
	}
	tail := plan[idx:]

	dollar := strings.Index(tail, "$")
	if dollar < 0 {
		return "", false
	}
	end := strings.Index(tail[dollar:], "USD")
	if end < 0 {
		return "", false
	}

	span := strings.TrimSpace(tail[dollar : dollar+end])
	if span == "" {
		return "", false
	}
	return span, true
}
