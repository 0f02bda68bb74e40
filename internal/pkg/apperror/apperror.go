package apperror

// AppError is an error that carries the HTTP status code the API layer
// should respond with. Business-rule failures are AppErrors; anything else
// is treated as an infrastructure failure and mapped to 500.
type AppError struct {
	Code    int    // HTTP status code (e.g., 400, 404, 409)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
// errors.Is against the wrapped error keeps working via Unwrap, so a
// sentinel AppError can be re-wrapped with a more specific message.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
