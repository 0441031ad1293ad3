package permute

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned when a permutation is constructed with a
	// parameter it cannot honor: a non-positive size or round count, an even
	// multiplier, or an interval that does not match the wrapped permutation.
	ErrInvalidParameter = errors.New("permute: invalid parameter")

	// ErrOutOfDomain is returned by checked calls given a value outside the
	// permutation's domain, and by Iterate given an offset past its end.
	ErrOutOfDomain = errors.New("permute: value out of domain")

	// ErrExhausted is returned by Iterator.Next once every element has been produced.
	ErrExhausted = errors.New("permute: sequence exhausted")

	// ErrNotBijective is returned by Verify when a permutation repeats, drops
	// or fails to invert a value.
	ErrNotBijective = errors.New("permute: not a bijection")
)

// ParamError describes a rejected construction parameter.
type ParamError struct {
	Param  string
	Value  any
	Reason string
}

// Error returns a formatted error message for the parameter error.
func (e *ParamError) Error() string {
	return fmt.Sprintf("permute: invalid %s %v: %s", e.Param, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidParameter to support errors.Is.
func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// DomainError describes a value that fell outside a finite domain [First, Last].
type DomainError struct {
	Value any
	First any
	Last  any
}

// Error returns a formatted error message for the domain error.
func (e *DomainError) Error() string {
	return fmt.Sprintf("permute: %v is outside domain [%v, %v]", e.Value, e.First, e.Last)
}

// Unwrap returns ErrOutOfDomain to support errors.Is.
func (e *DomainError) Unwrap() error {
	return ErrOutOfDomain
}

func paramError(param string, value any, reason string) error {
	return &ParamError{Param: param, Value: value, Reason: reason}
}
