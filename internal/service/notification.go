package service

import (
	"context"
	"log/slog"

	"github.com/newrelic/go-agent/v3/newrelic"

	"cabbooking/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationRideBooked     NotificationType = "RIDE_BOOKED"
	NotificationDriverAssigned NotificationType = "DRIVER_ASSIGNED"
	NotificationDriverArriving NotificationType = "DRIVER_ARRIVING"
	NotificationTripStarted    NotificationType = "TRIP_STARTED"
	NotificationTripCompleted  NotificationType = "TRIP_COMPLETED"
	NotificationRideCancelled  NotificationType = "RIDE_CANCELLED"
	NotificationReceiptReady   NotificationType = "RECEIPT_READY"
)

// lifecycleEventType is the New Relic custom event type for ride notifications.
const lifecycleEventType = "RideLifecycle"

// Notification represents a notification to be sent.
type Notification struct {
	Type    NotificationType
	RideID  string
	Title   string
	Message string
	Data    map[string]any
}

// NotificationService publishes ride lifecycle events. Delivery is a structured
// log line plus, when New Relic is enabled, a custom event.
type NotificationService struct {
	logger *slog.Logger
	nrApp  *newrelic.Application
}

// NewNotificationService creates a new NotificationService. nrApp may be nil.
func NewNotificationService(logger *slog.Logger, nrApp *newrelic.Application) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{logger: logger, nrApp: nrApp}
}

// NotifyRideBooked announces a new ride searching for a driver.
func (s *NotificationService) NotifyRideBooked(ctx context.Context, ride *domain.Ride) {
	s.send(ctx, Notification{
		Type:    NotificationRideBooked,
		RideID:  ride.ID,
		Title:   "Ride Booked",
		Message: "Searching for a " + string(ride.CabClass) + " near " + ride.Pickup.String(),
		Data: map[string]any{
			"cab_class":  string(ride.CabClass),
			"fare_total": ride.Fare.Total,
			"surge":      ride.Fare.SurgeMultiplier,
		},
	})
}

// NotifyDriverAssigned tells the rider who is coming.
func (s *NotificationService) NotifyDriverAssigned(ctx context.Context, ride *domain.Ride) {
	if ride.Driver == nil {
		return
	}
	s.send(ctx, Notification{
		Type:    NotificationDriverAssigned,
		RideID:  ride.ID,
		Title:   "Driver Assigned",
		Message: ride.Driver.Name + " is on the way in a " + ride.Driver.VehicleColor + " " + ride.Driver.VehicleModel,
		Data: map[string]any{
			"driver_id":   ride.Driver.ID,
			"driver_name": ride.Driver.Name,
			"eta_minutes": ride.ETAMinutes,
		},
	})
}

// NotifyStatusChanged covers ARRIVING, IN_PROGRESS and COMPLETED.
func (s *NotificationService) NotifyStatusChanged(ctx context.Context, ride *domain.Ride) {
	n := Notification{RideID: ride.ID, Data: map[string]any{}}
	switch ride.Status {
	case domain.RideStatusArriving:
		n.Type, n.Title, n.Message = NotificationDriverArriving, "Driver Arriving", "Your driver is arriving at the pickup point"
	case domain.RideStatusInProgress:
		n.Type, n.Title, n.Message = NotificationTripStarted, "Trip Started", "Your trip has started. Enjoy your ride!"
	case domain.RideStatusCompleted:
		n.Type, n.Title, n.Message = NotificationTripCompleted, "Trip Completed", "You have arrived at "+ride.Dropoff.Label()
		n.Data["fare_total"] = ride.Fare.Total
	default:
		return
	}
	s.send(ctx, n)
}

// NotifyRideCancelled reports a cancellation and the fee owed.
func (s *NotificationService) NotifyRideCancelled(ctx context.Context, ride *domain.Ride) {
	s.send(ctx, Notification{
		Type:    NotificationRideCancelled,
		RideID:  ride.ID,
		Title:   "Ride Cancelled",
		Message: ride.CancelReason,
		Data: map[string]any{
			"cancellation_fee": ride.CancellationFee,
		},
	})
}

// NotifyReceiptReady notifies the rider that the receipt is ready.
func (s *NotificationService) NotifyReceiptReady(ctx context.Context, receipt *domain.Receipt) {
	s.send(ctx, Notification{
		Type:    NotificationReceiptReady,
		RideID:  receipt.RideID,
		Title:   "Receipt Ready",
		Message: "Your receipt is ready",
		Data: map[string]any{
			"receipt_id": receipt.ID,
			"fare_total": receipt.TotalFare,
		},
	})
}

func (s *NotificationService) send(ctx context.Context, n Notification) {
	attrs := []any{
		slog.String("type", string(n.Type)),
		slog.String("ride_id", n.RideID),
		slog.String("title", n.Title),
		slog.String("message", n.Message),
	}
	for k, v := range n.Data {
		attrs = append(attrs, slog.Any(k, v))
	}
	s.logger.InfoContext(ctx, "notification", attrs...)

	if s.nrApp == nil {
		return
	}
	params := map[string]any{
		"type":    string(n.Type),
		"ride_id": n.RideID,
	}
	for k, v := range n.Data {
		params[k] = v
	}
	s.nrApp.RecordCustomEvent(lifecycleEventType, params)
}
