package domain

import (
	"fmt"
	"strings"
)

// CabClass is a tier of service.
type CabClass string

const (
	CabClassEconomy CabClass = "ECONOMY"
	CabClassSedan   CabClass = "SEDAN"
	CabClassSUV     CabClass = "SUV"
	CabClassLuxury  CabClass = "LUXURY"
)

// CabRates holds the fixed pricing constants of a cab class.
type CabRates struct {
	DisplayName string
	BaseFare    float64
	PerKm       float64
	PerMinute   float64
	Capacity    int
}

var cabClasses = []CabClass{CabClassEconomy, CabClassSedan, CabClassSUV, CabClassLuxury}

var cabRateTable = map[CabClass]CabRates{
	CabClassEconomy: {DisplayName: "Economy", BaseFare: 50, PerKm: 12, PerMinute: 2, Capacity: 4},
	CabClassSedan:   {DisplayName: "Sedan", BaseFare: 80, PerKm: 15, PerMinute: 2.5, Capacity: 4},
	CabClassSUV:     {DisplayName: "SUV", BaseFare: 120, PerKm: 20, PerMinute: 3, Capacity: 6},
	CabClassLuxury:  {DisplayName: "Luxury", BaseFare: 200, PerKm: 30, PerMinute: 5, Capacity: 4},
}

// legacy names accepted by ParseCabClass
var cabClassAliases = map[string]CabClass{
	"MINI": CabClassEconomy,
}

// CabClasses returns every cab class in display order.
func CabClasses() []CabClass {
	out := make([]CabClass, len(cabClasses))
	copy(out, cabClasses)
	return out
}

// ParseCabClass resolves a case-insensitive cab class name.
func ParseCabClass(name string) (CabClass, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if c := CabClass(key); c.IsValid() {
		return c, nil
	}
	if c, ok := cabClassAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q (must be one of %s)", ErrInvalidCabClass, name, joinClasses())
}

// IsValid reports whether c has an entry in the rate table.
func (c CabClass) IsValid() bool {
	_, ok := cabRateTable[c]
	return ok
}

// Rates returns the pricing constants for c.
func (c CabClass) Rates() (CabRates, error) {
	r, ok := cabRateTable[c]
	if !ok {
		return CabRates{}, fmt.Errorf("%w: %q", ErrInvalidCabClass, string(c))
	}
	return r, nil
}

func joinClasses() string {
	names := make([]string, len(cabClasses))
	for i, c := range cabClasses {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
