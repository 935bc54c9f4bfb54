package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: session, credential, and seeding configuration
//   - database.go: database configuration
//   - http.go: HTTP server configuration
//   - services.go: service mode and reaper configuration
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading, etc.)
	// Set DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Auth holds session and account lifecycle configuration.
	Auth AuthConfig

	// Postgres holds database configuration.
	Postgres DBConfig `envPrefix:"DB_"`

	// HTTP holds server configuration.
	HTTP HTTPConfig

	// Services selects which service modes run in this process.
	Services string `env:"SERVICES" envDefault:"http,reaper"`

	// Reaper holds expired-account reaper configuration.
	Reaper ReaperConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.Reaper.Sanitize()
	c.detectDevMode()
}

func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		appEnv := strings.ToLower(os.Getenv("APP_ENV"))
		c.IsDev = appEnv == "development" || appEnv == "dev"
	}
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeHTTP]
}

// IsReaperEnabled returns true if the periodic reaper service is enabled.
func (c *AppConfig) IsReaperEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeReaper]
}
