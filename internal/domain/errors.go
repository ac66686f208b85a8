package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the parent of every input validation error.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState is the parent of every lifecycle error.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidCabClass is returned when a cab class name cannot be resolved.
	ErrInvalidCabClass = fmt.Errorf("%w: unknown cab class", ErrInvalidArgument)

	// ErrInvalidStatus is returned when a ride status name cannot be resolved.
	ErrInvalidStatus = fmt.Errorf("%w: unknown ride status", ErrInvalidArgument)

	// ErrInvalidLocation is returned when coordinates are out of range.
	ErrInvalidLocation = fmt.Errorf("%w: coordinates out of range", ErrInvalidArgument)

	// ErrInvalidTransition is returned when a ride cannot move to the requested status.
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrInvalidState)
)
