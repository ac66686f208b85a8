package app

import (
	"log/slog"

	"github.com/newrelic/go-agent/v3/newrelic"

	"cabbooking/internal/repository"
	"cabbooking/internal/service"
)

// NewRideService assembles the ride core around a registry. nrApp may be nil.
func NewRideService(
	rides repository.RideRegistry,
	rnd service.Random,
	clock service.Clock,
	logger *slog.Logger,
	nrApp *newrelic.Application,
) *service.RideService {
	return service.NewRideService(
		rides,
		service.NewFareCalculator(),
		service.NewSurgePolicy(rnd, clock),
		service.NewDriverPool(rnd),
		service.NewNotificationService(logger, nrApp),
		clock,
	)
}
