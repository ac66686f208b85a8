package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cabbooking/internal/domain"
)

// BuildReceipt summarises a completed ride. The receipt ID is derived from a UUID.
func BuildReceipt(ride *domain.Ride, generatedAt time.Time) (*domain.Receipt, error) {
	if ride.Status != domain.RideStatusCompleted {
		return nil, fmt.Errorf("ride %s is %s: %w", ride.ID, ride.Status, ErrRideNotCompleted)
	}

	driverName := ""
	if ride.Driver != nil {
		driverName = ride.Driver.Name
	}

	subtotal := ride.Fare.Subtotal()
	return &domain.Receipt{
		ID:              "RCPT-" + strings.ToUpper(uuid.NewString()[:8]),
		RideID:          ride.ID,
		CabClass:        ride.CabClass,
		DriverName:      driverName,
		Pickup:          ride.Pickup,
		Dropoff:         ride.Dropoff,
		DistanceKm:      ride.DistanceKm,
		DurationMinutes: ride.DurationMinutes,
		BaseFare:        domain.RoundTo(ride.Fare.BaseFare, 2),
		DistanceFare:    domain.RoundTo(ride.Fare.DistanceFare, 2),
		TimeFare:        domain.RoundTo(ride.Fare.TimeFare, 2),
		SurgeMultiplier: ride.Fare.SurgeMultiplier,
		SurgeAmount:     domain.RoundTo(ride.Fare.Total-subtotal, 2),
		TotalFare:       ride.Fare.Total,
		StartedAt:       ride.StartedAt,
		CompletedAt:     ride.CompletedAt,
		GeneratedAt:     generatedAt,
	}, nil
}

// FormatReceipt formats the receipt as a string (for console or print).
func FormatReceipt(receipt *domain.Receipt) string {
	var b strings.Builder
	line := "=====================================\n"
	rule := "-------------------------------------\n"

	b.WriteString(line)
	b.WriteString("            RIDE RECEIPT\n")
	b.WriteString(line)
	fmt.Fprintf(&b, "Receipt ID: %s\n", receipt.ID)
	fmt.Fprintf(&b, "Ride ID:    %s\n", receipt.RideID)
	fmt.Fprintf(&b, "Date:       %s\n\n", receipt.CompletedAt.Format("Jan 02, 2006 3:04 PM"))

	b.WriteString("TRIP DETAILS\n")
	b.WriteString(rule)
	fmt.Fprintf(&b, "Cab:         %s\n", receipt.CabClass)
	if receipt.DriverName != "" {
		fmt.Fprintf(&b, "Driver:      %s\n", receipt.DriverName)
	}
	fmt.Fprintf(&b, "Pickup:      %s\n", receipt.Pickup)
	fmt.Fprintf(&b, "Dropoff:     %s\n", receipt.Dropoff)
	fmt.Fprintf(&b, "Distance:    %.2f km\n", receipt.DistanceKm)
	fmt.Fprintf(&b, "Duration:    %d min\n\n", receipt.DurationMinutes)

	b.WriteString("FARE BREAKDOWN\n")
	b.WriteString(rule)
	fmt.Fprintf(&b, "Base Fare:        Rs %.2f\n", receipt.BaseFare)
	fmt.Fprintf(&b, "Distance Fare:    Rs %.2f\n", receipt.DistanceFare)
	fmt.Fprintf(&b, "Time Fare:        Rs %.2f\n", receipt.TimeFare)
	fmt.Fprintf(&b, "Surge (%.1fx):     Rs %.2f\n", receipt.SurgeMultiplier, receipt.SurgeAmount)
	b.WriteString(rule)
	fmt.Fprintf(&b, "TOTAL:            Rs %.2f\n\n", receipt.TotalFare)

	b.WriteString(line)
	b.WriteString("     Thank you for riding with us!\n")
	b.WriteString(line)
	return b.String()
}
