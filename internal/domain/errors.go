package domain

import "errors"

// Sentinel errors shared by the services operating on UserData. Callers
// treat these as no-ops or user-facing messages, never as fatal failures.
var (
	ErrAnalysisNotFound    = errors.New("job analysis not found")
	ErrApplicationNotFound = errors.New("job application not found")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrInvalidStep         = errors.New("invalid pipeline step")
)
