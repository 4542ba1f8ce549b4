package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound        = ErrorKind("Not Found")
	InvalidArgument = ErrorKind("Invalid Argument")
	Unsupported     = ErrorKind("Unsupported")

	// OutOfRange is returned when a bitmap number is outside the indexed domain.
	OutOfRange = ErrorKind("out of range")

	// RemoteLookup is returned when the ord data service fails to resolve a
	// canonical inscription or its metadata.
	RemoteLookup = ErrorKind("remote lookup failed")

	// BadFormat is returned when inscription content does not match the
	// bitmap/parcel grammar.
	BadFormat = ErrorKind("bad format")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
