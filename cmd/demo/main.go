// Command demo walks one ride through its whole lifecycle on the console.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cabbooking/internal/app"
	"cabbooking/internal/config"
	"cabbooking/internal/domain"
	"cabbooking/internal/repository/memory"
	"cabbooking/internal/service"
)

var (
	heavyRule = strings.Repeat("=", 60)
	lightRule = strings.Repeat("-", 60)
)

type pacing struct {
	searchMin time.Duration
	searchMax time.Duration
	step      time.Duration
}

func main() {
	fast := flag.Bool("fast", false, "skip the simulated delays")
	cab := flag.String("cab", string(domain.CabClassSedan), "cab class to book")
	seed := flag.Uint64("seed", 0, "seed for a reproducible run (0 picks a random one)")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	class, err := domain.ParseCabClass(*cab)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	p := pacing{searchMin: cfg.Demo.SearchDelayMin, searchMax: cfg.Demo.SearchDelayMax, step: cfg.Demo.StepDelay}
	if *fast {
		p = pacing{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Lifecycle notifications go to stderr so they do not interleave with the walkthrough.
	logger := app.NewLogger(os.Stderr, cfg.Log.Level)
	rnd := service.DefaultRandom()
	if *seed != 0 {
		rnd = seeded(*seed)
	}
	rides := app.NewRideService(memory.NewRideRegistry(), rnd, time.Now, logger, nil)

	if err := run(ctx, os.Stdout, rides, rnd, class, p); err != nil {
		fmt.Fprintln(os.Stderr, "demo failed:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, rides *service.RideService, rnd service.Random, class domain.CabClass, p pacing) error {
	pickup := domain.MustGeoPoint(12.9716, 77.5946, "MG Road, Bangalore")
	dropoff := domain.MustGeoPoint(12.9352, 77.6245, "Koramangala, Bangalore")

	fmt.Fprintln(out, heavyRule)
	fmt.Fprintln(out, "MOCK CAB BOOKING SYSTEM")
	fmt.Fprintln(out, heavyRule)
	fmt.Fprintf(out, "\nPickup:  %s\n", pickup.Label())
	fmt.Fprintf(out, "Dropoff: %s\n", dropoff.Label())

	section(out, "AVAILABLE CABS")
	cabs, err := rides.AvailableCabs(ctx, pickup)
	if err != nil {
		return err
	}
	for i, cab := range cabs {
		fmt.Fprintf(out, "\n%d. %s\n", i+1, cab.DisplayName)
		fmt.Fprintf(out, "   Capacity: %d passengers\n", cab.Capacity)
		fmt.Fprintf(out, "   Available: %d cabs\n", cab.AvailableCount)
		fmt.Fprintf(out, "   ETA: %d min\n", cab.ETAMinutes)
		if cab.SurgeMultiplier > 1.0 {
			fmt.Fprintf(out, "   Surge: %.1fx\n", cab.SurgeMultiplier)
		}
	}

	section(out, "FARE ESTIMATES")
	for _, c := range domain.CabClasses() {
		fare, err := rides.QuoteFare(ctx, pickup, dropoff, c)
		if err != nil {
			return err
		}
		rates, _ := c.Rates()
		fmt.Fprintf(out, "\n%s: Rs %.2f\n", rates.DisplayName, fare.Total)
		if fare.SurgeActive() {
			fmt.Fprintf(out, "  (includes %.1fx surge)\n", fare.SurgeMultiplier)
		}
	}

	section(out, "BOOKING RIDE")
	ride, err := rides.BookRide(ctx, pickup, dropoff, class)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nRide booked: %s (%s)\n", ride.ID, ride.CabClass)
	fmt.Fprintf(out, "Distance: %.2f km, about %d min\n", ride.DistanceKm, ride.DurationMinutes)
	fmt.Fprintf(out, "Estimated fare: Rs %.2f\n", ride.Fare.Total)

	section(out, "RIDE IN PROGRESS")
	fmt.Fprintln(out, "\nSearching for drivers...")
	if err := sleep(ctx, searchDelay(rnd, p)); err != nil {
		return err
	}

	ride, err = rides.AssignDriver(ctx, ride.ID)
	if err != nil {
		return err
	}
	d := ride.Driver
	fmt.Fprintf(out, "\nDriver found: %s (%.1f stars, %d trips)\n", d.Name, d.Rating, d.TotalTrips)
	fmt.Fprintf(out, "Vehicle: %s %s, %s\n", d.VehicleColor, d.VehicleModel, d.VehicleNumber)
	fmt.Fprintf(out, "Phone: %s\n", d.Phone)
	fmt.Fprintf(out, "ETA: %d minutes\n", ride.ETAMinutes)

	steps := []struct {
		status  domain.RideStatus
		message string
	}{
		{domain.RideStatusArriving, "Driver is arriving..."},
		{domain.RideStatusInProgress, "Ride started. Heading to destination..."},
		{domain.RideStatusCompleted, "Ride completed!"},
	}
	for _, s := range steps {
		if err := sleep(ctx, p.step); err != nil {
			return err
		}
		if ride, err = rides.SetStatus(ctx, ride.ID, s.status); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s\n", s.message)
	}

	receipt, err := rides.Receipt(ctx, ride.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, service.FormatReceipt(receipt))

	section(out, "RIDE HISTORY")
	history, err := rides.ListCompleted(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nTotal completed rides: %d\n", len(history))
	return nil
}

func section(out io.Writer, title string) {
	fmt.Fprintf(out, "\n%s\n%s\n%s\n", lightRule, title, lightRule)
}

// searchDelay picks a delay in [searchMin, searchMax].
func searchDelay(rnd service.Random, p pacing) time.Duration {
	if p.searchMax <= p.searchMin {
		return p.searchMin
	}
	return p.searchMin + time.Duration(rnd.Float64()*float64(p.searchMax-p.searchMin))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// seeded returns a reproducible random source.
func seeded(seed uint64) service.Random {
	return service.NewRandom(rand.NewPCG(seed, seed))
}
