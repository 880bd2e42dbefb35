package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidArgument      ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidOrder         ErrorCode = 102
	ErrCodeInvalidVersion       ErrorCode = 104

	// Account errors (200-299)
	ErrCodeAccountUnavailable ErrorCode = 200
	ErrCodePriceUnavailable   ErrorCode = 201
	ErrCodeQueryFailed        ErrorCode = 203

	// Order errors (500-599)
	ErrCodeOrderFailed    ErrorCode = 500
	ErrCodeZeroOrderSize  ErrorCode = 501
	ErrCodeOrderNotFound  ErrorCode = 502
	ErrCodeChainingFailed ErrorCode = 503

	// Wait errors (600-699)
	ErrCodeWaitTimeout         ErrorCode = 600
	ErrCodeWaitCancelled       ErrorCode = 601
	ErrCodeOrderStateTransient ErrorCode = 602
)
