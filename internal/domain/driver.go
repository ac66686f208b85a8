package domain

// Driver is a synthetic driver generated for a single ride.
type Driver struct {
	ID            string
	Name          string
	Phone         string
	Rating        float64
	TotalTrips    int
	VehicleNumber string
	VehicleModel  string
	VehicleColor  string
	Location      GeoPoint
}
