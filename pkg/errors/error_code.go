package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidWindowSize    ErrorCode = 102
	ErrCodeInvalidHorizon       ErrorCode = 103
	ErrCodeInvalidTestFraction  ErrorCode = 104
	ErrCodeInvalidVersion       ErrorCode = 105
	ErrCodeVersionMismatch      ErrorCode = 106

	// Data errors (200-299)
	ErrCodeFormat           ErrorCode = 200
	ErrCodeInsufficientData ErrorCode = 201
	ErrCodeNoDataLoaded     ErrorCode = 202
	ErrCodeDatasetNotReady  ErrorCode = 203

	// Forecasting errors (300-399)
	ErrCodeModelFitFailed     ErrorCode = 300
	ErrCodeModelPredictFailed ErrorCode = 301
	ErrCodeModelOutputShape   ErrorCode = 302

	// Benchmark errors (400-499)
	ErrCodeLengthMismatch ErrorCode = 400

	// Source errors (500-599)
	ErrCodeSourceUnavailable ErrorCode = 500
	ErrCodeSourceEmpty       ErrorCode = 501

	// Storage and report errors (600-699)
	ErrCodeStorageFailed     ErrorCode = 600
	ErrCodeReportWriteFailed ErrorCode = 601
	ErrCodeUnsupportedFormat ErrorCode = 602
)
