package service

import (
	"fmt"

	"github.com/google/uuid"

	"cabbooking/internal/domain"
)

const (
	driverJitterDegrees = 0.01
	driverLocationLabel = "Driver location"
)

var (
	driverFirstNames = []string{"Rajesh", "Amit", "Suresh", "Vijay", "Anil", "Rahul", "Sanjay", "Manoj"}
	driverLastNames  = []string{"Kumar", "Sharma", "Singh", "Patel", "Reddy", "Verma", "Gupta", "Joshi"}
	plateSeries      = []string{"A", "B", "C"}
)

type vehicle struct {
	model string
	color string
}

var fleet = []vehicle{
	{"Swift", "White"},
	{"Etios", "Silver"},
	{"Dzire", "Blue"},
	{"Innova", "Grey"},
	{"XUV", "Black"},
	{"Scorpio", "Red"},
}

// DriverPool produces synthetic drivers and availability figures. Every call
// returns a fresh driver; drivers are never reused between rides.
type DriverPool struct {
	rnd   Random
	newID func() string
}

// NewDriverPool creates a DriverPool drawing from rnd.
func NewDriverPool(rnd Random) *DriverPool {
	return &DriverPool{
		rnd:   rnd,
		newID: func() string { return uuid.NewString()[:8] },
	}
}

// SpawnNear generates a driver within about a kilometre of location.
func (p *DriverPool) SpawnNear(location domain.GeoPoint) domain.Driver {
	v := pick(p.rnd, fleet)
	return domain.Driver{
		ID:            p.newID(),
		Name:          pick(p.rnd, driverFirstNames) + " " + pick(p.rnd, driverLastNames),
		Phone:         p.phone(),
		Rating:        domain.RoundTo(uniform(p.rnd, 4.0, 5.0), 1),
		TotalTrips:    intBetween(p.rnd, 100, 5000),
		VehicleNumber: p.plate(),
		VehicleModel:  v.model,
		VehicleColor:  v.color,
		Location: location.Offset(
			uniform(p.rnd, -driverJitterDegrees, driverJitterDegrees),
			uniform(p.rnd, -driverJitterDegrees, driverJitterDegrees),
			driverLocationLabel,
		),
	}
}

// Dispatch spawns a driver for a pickup and returns their ETA in minutes.
func (p *DriverPool) Dispatch(pickup domain.GeoPoint) (domain.Driver, int) {
	driver := p.SpawnNear(pickup)
	return driver, intBetween(p.rnd, 3, 10)
}

// Availability returns how many cabs of a class are nearby and the ETA of the
// closest one.
func (p *DriverPool) Availability() (count, etaMinutes int) {
	return intBetween(p.rnd, 2, 10), intBetween(p.rnd, 2, 15)
}

// phone returns a mobile number in [7000000000, 9999999999]. The leading digit
// is drawn separately so every draw fits a 32-bit int.
func (p *DriverPool) phone() string {
	return fmt.Sprintf("+91-%d%09d", intBetween(p.rnd, 7, 9), intBetween(p.rnd, 0, 999999999))
}

func (p *DriverPool) plate() string {
	return fmt.Sprintf("KA%d%s%d",
		intBetween(p.rnd, 10, 99),
		pick(p.rnd, plateSeries),
		intBetween(p.rnd, 1000, 9999),
	)
}
