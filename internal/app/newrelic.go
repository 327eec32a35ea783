package app

import (
	"log/slog"

	"github.com/newrelic/go-agent/v3/newrelic"

	"carpool/internal/config"
)

// NewNewRelic starts the APM agent when enabled. Failure to start is logged and
// yields nil; the service runs uninstrumented.
func NewNewRelic(cfg config.NewRelicConfig, logger *slog.Logger) *newrelic.Application {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return nil
	}

	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(true),
	)
	if err != nil {
		logger.Warn("failed to initialize New Relic", "error", err)
		return nil
	}

	logger.Info("New Relic enabled", "app", cfg.AppName)
	return nrApp
}
