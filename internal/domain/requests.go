package domain

// SubmitReportRequest carries a candidate hazard report. Image bytes are
// optional; ImageName is the original upload filename and is stored verbatim.
type SubmitReportRequest struct {
	Description   string             `json:"description" validate:"required"`
	Severity      Severity           `json:"severity" validate:"required,severity"`
	Accessibility AccessibilityLevel `json:"accessibility" validate:"required,accessibility"`
	Address       string             `json:"address" validate:"required"`
	ImageName     string             `json:"-"`
	ImageBytes    []byte             `json:"-"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,report_status"`
}

// ReportView is a HazardReport plus the display projection of its status.
type ReportView struct {
	HazardReport
	StatusLabel string `json:"status_label"`
}

func NewReportView(r HazardReport) ReportView {
	return ReportView{HazardReport: r, StatusLabel: r.Status.Label()}
}

type ListReportsResponse struct {
	Reports []ReportView `json:"reports"`
	Total   int          `json:"total"`
}

// SubmitReportResponse returns the stored record plus any predictions the
// optional image classifier produced for the uploaded photo.
type SubmitReportResponse struct {
	Report      ReportView   `json:"report"`
	Predictions []Prediction `json:"predictions,omitempty"`
}

// Prediction is one label/confidence pair from the image classifier.
type Prediction struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}
