package app

import (
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"

	"cabbooking/internal/config"
)

// NewNewRelicApp starts the New Relic agent. It returns nil, nil when New Relic
// is disabled so callers can pass the result around unconditionally.
func NewNewRelicApp(cfg config.NewRelicConfig) (*newrelic.Application, error) {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return nil, nil
	}

	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize new relic: %w", err)
	}
	return nrApp, nil
}
