package domain

import "time"

// ReportEvent is the notification payload enqueued after a successful
// submission and delivered to the configured webhook.
type ReportEvent struct {
	EventID     string    `json:"event_id"`
	HazardID    int64     `json:"hazard_id"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Address     string    `json:"address"`
	ReportedAt  time.Time `json:"reported_at"`
}
