package service

import (
	"cabbooking/internal/domain"
)

// HourWindow is an inclusive range of hours of the day.
type HourWindow struct {
	From int
	To   int
}

func (w HourWindow) contains(hour int) bool {
	return hour >= w.From && hour <= w.To
}

// SurgeConfig contains surge pricing configuration.
type SurgeConfig struct {
	PeakWindows []HourWindow
	PeakMin     float64 // lowest multiplier during peak hours
	PeakMax     float64
	OffPeakMin  float64
	OffPeakMax  float64
}

// DefaultSurgeConfig returns the default surge configuration: morning and
// evening rush hours surge between 1.2x and 2.0x, other hours between 1.0x and 1.3x.
func DefaultSurgeConfig() SurgeConfig {
	return SurgeConfig{
		PeakWindows: []HourWindow{{From: 8, To: 10}, {From: 17, To: 20}},
		PeakMin:     1.2,
		PeakMax:     2.0,
		OffPeakMin:  1.0,
		OffPeakMax:  1.3,
	}
}

// SurgePolicy picks a time-of-day surge multiplier.
type SurgePolicy struct {
	config SurgeConfig
	rnd    Random
	now    Clock
}

// NewSurgePolicy creates a SurgePolicy with the default configuration.
func NewSurgePolicy(rnd Random, now Clock) *SurgePolicy {
	return NewSurgePolicyWithConfig(DefaultSurgeConfig(), rnd, now)
}

// NewSurgePolicyWithConfig creates a SurgePolicy with a custom configuration.
func NewSurgePolicyWithConfig(config SurgeConfig, rnd Random, now Clock) *SurgePolicy {
	return &SurgePolicy{config: config, rnd: rnd, now: now}
}

// MultiplierFor returns the multiplier for the current local hour.
func (p *SurgePolicy) MultiplierFor(location domain.GeoPoint) float64 {
	return p.MultiplierAt(location, p.now().Hour())
}

// MultiplierAt returns a multiplier rounded to one decimal for the given hour.
// The location is accepted for future zone pricing and does not affect the result.
func (p *SurgePolicy) MultiplierAt(_ domain.GeoPoint, hour int) float64 {
	lo, hi := p.config.OffPeakMin, p.config.OffPeakMax
	if p.IsPeakHour(hour) {
		lo, hi = p.config.PeakMin, p.config.PeakMax
	}
	return domain.RoundTo(uniform(p.rnd, lo, hi), 1)
}

// IsPeakHour reports whether hour falls inside a peak window.
func (p *SurgePolicy) IsPeakHour(hour int) bool {
	for _, w := range p.config.PeakWindows {
		if w.contains(hour) {
			return true
		}
	}
	return false
}
