package validator

import "github.com/go-playground/validator/v10"

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("severity", validateSeverity)
	validate.RegisterValidation("accessibility", validateAccessibility)
	validate.RegisterValidation("report_status", validateReportStatus)
}

func validateSeverity(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Low", "Moderate", "High", "Severe":
		return true
	}
	return false
}

func validateAccessibility(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Easily Accessible", "Moderately Accessible", "Challenging", "Inaccessible":
		return true
	}
	return false
}

func validateReportStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Not Started", "In Progress", "Completed":
		return true
	}
	return false
}
