package service

import "fmt"

// ValidationError rejects malformed input. Raised before any store write,
// so the caller can correct the input and retry.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// CapacityError rejects an operation that would exceed a cap: the 5-link
// limit, the 50-signup limit, or the available wallet balance. Also raised
// before any store write.
type CapacityError struct {
	Reason string
}

func (e *CapacityError) Error() string { return e.Reason }

func capacityf(format string, args ...any) error {
	return &CapacityError{Reason: fmt.Sprintf(format, args...)}
}
