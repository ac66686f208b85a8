package service

import (
	"errors"
	"fmt"

	"cabbooking/internal/domain"
)

var (
	// ErrInvalidRideID is returned when ride ID is empty.
	ErrInvalidRideID = fmt.Errorf("%w: empty ride id", domain.ErrInvalidArgument)

	// ErrRideNotCompleted is returned when a receipt is requested for an unfinished ride.
	ErrRideNotCompleted = fmt.Errorf("%w: ride is not completed", domain.ErrInvalidState)

	// ErrStatusNotSettable is returned for statuses that cannot be requested directly.
	ErrStatusNotSettable = fmt.Errorf("%w: status cannot be set directly", domain.ErrInvalidState)

	// ErrRideIDExhausted is returned when no unused ride ID could be allocated.
	ErrRideIDExhausted = errors.New("could not allocate a unique ride id")
)
