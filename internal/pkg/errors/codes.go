package errors

import "net/http"

var (
	ErrRouteNotFound = New(
		"ROUTE_NOT_FOUND",
		"No matching route found.",
		http.StatusNotFound,
	)

	ErrPricingNotFound = New(
		"PRICING_NOT_FOUND",
		"No matching pricing found.",
		http.StatusNotFound,
	)

	ErrSurveyNotFound = New(
		"SURVEY_NOT_FOUND",
		"Survey route not found",
		http.StatusNotFound,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrValidationFailed = New(
		"VALIDATION_FAILED",
		"Missing/invalid fields",
		http.StatusBadRequest,
	)

	ErrInvalidDocument = New(
		"INVALID_DOCUMENT",
		"Report must be a .doc/.docx file",
		http.StatusBadRequest,
	)

	ErrDocumentTooLarge = New(
		"DOCUMENT_TOO_LARGE",
		"Report exceeds the maximum upload size",
		http.StatusBadRequest,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Missing or invalid credentials",
		http.StatusUnauthorized,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
