package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// InvalidArgument is returned when an argument is invalid.
	InvalidArgument = ErrorKind("Invalid Argument")

	// Unsupported is returned when a feature or result is not supported.
	Unsupported = ErrorKind("Unsupported")

	// Unauthorized is returned when the caller is not allowed to perform an action.
	Unauthorized = ErrorKind("Unauthorized")

	// Conflict is returned when a resource already exists.
	Conflict = ErrorKind("Conflict")

	// SomethingWentWrong is returned when an unexpected error occurs.
	SomethingWentWrong = ErrorKind("Something Went Wrong")

	OverflowUint64  = ErrorKind("overflow uint64")
	OverflowUint128 = ErrorKind("overflow uint128")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
