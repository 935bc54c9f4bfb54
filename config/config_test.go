package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:  "single service - http",
			input: "http",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP: true,
			},
			expectError: false,
		},
		{
			name:  "single service - reaper",
			input: "reaper",
			expected: map[ServiceMode]bool{
				ServiceModeReaper: true,
			},
			expectError: false,
		},
		{
			name:  "both services",
			input: "http,reaper",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:   true,
				ServiceModeReaper: true,
			},
			expectError: false,
		},
		{
			name:  "services with spaces",
			input: " http , reaper ",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:   true,
				ServiceModeReaper: true,
			},
			expectError: false,
		},
		{
			name:  "duplicate services",
			input: "http,http,reaper",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:   true,
				ServiceModeReaper: true,
			},
			expectError: false,
		},
		{
			name:        "empty string",
			input:       "",
			expected:    nil,
			expectError: true,
		},
		{
			name:        "only spaces and commas",
			input:       " , , ",
			expected:    nil,
			expectError: true,
		},
		{
			name:        "invalid service name",
			input:       "http,invalid-service",
			expected:    nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseServices(tt.input)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if len(result) != len(tt.expected) {
				t.Errorf("expected %d services, got %d", len(tt.expected), len(result))
				return
			}

			for service, expected := range tt.expected {
				if result[service] != expected {
					t.Errorf("expected service %s to be %v, got %v", service, expected, result[service])
				}
			}
		})
	}
}

func TestConfig_ServiceEnabledMethods(t *testing.T) {
	tests := []struct {
		name           string
		services       string
		expectedHTTP   bool
		expectedReaper bool
	}{
		{
			name:           "default - http and reaper",
			services:       "http,reaper",
			expectedHTTP:   true,
			expectedReaper: true,
		},
		{
			name:           "http only",
			services:       "http",
			expectedHTTP:   true,
			expectedReaper: false,
		},
		{
			name:           "reaper only",
			services:       "reaper",
			expectedHTTP:   false,
			expectedReaper: true,
		},
		{
			name:           "invalid configuration disables everything",
			services:       "invalid-service",
			expectedHTTP:   false,
			expectedReaper: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AppConfig{Services: tt.services}

			if cfg.IsHTTPServerEnabled() != tt.expectedHTTP {
				t.Errorf("IsHTTPServerEnabled(): expected %v, got %v", tt.expectedHTTP, cfg.IsHTTPServerEnabled())
			}

			if cfg.IsReaperEnabled() != tt.expectedReaper {
				t.Errorf("IsReaperEnabled(): expected %v, got %v", tt.expectedReaper, cfg.IsReaperEnabled())
			}
		})
	}
}

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_ISSUER", "tasklight-test")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("DEFAULT_USER_TTL_MINUTES", "5")
	t.Setenv("SEED_ADMIN_USERNAME", "root")
	t.Setenv("SEED_ADMIN_PASSWORD", "root-pw")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	if cfg.Auth.SessionSecret != "test-secret" {
		t.Errorf("expected session secret from env, got %q", cfg.Auth.SessionSecret)
	}
	if cfg.Auth.TokenIssuer != "tasklight-test" {
		t.Errorf("expected token issuer from env, got %q", cfg.Auth.TokenIssuer)
	}
	if cfg.Auth.BcryptCost != 4 {
		t.Errorf("expected bcrypt cost 4, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.DefaultUserTTLMinutes != 5 {
		t.Errorf("expected default TTL 5, got %d", cfg.Auth.DefaultUserTTLMinutes)
	}
	if cfg.Auth.SeedAdmin.Username != "root" || cfg.Auth.SeedAdmin.Password != "root-pw" {
		t.Errorf("unexpected seed admin config: %#v", cfg.Auth.SeedAdmin)
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	cfg := AuthConfig{
		DefaultUserTTLMinutes: 0,
		BcryptCost:            -3,
	}

	cfg.Sanitize()

	if cfg.DefaultUserTTLMinutes != 1 {
		t.Fatalf("expected default TTL to be clamped to 1, got %d", cfg.DefaultUserTTLMinutes)
	}
	if cfg.BcryptCost != 0 {
		t.Fatalf("expected bcrypt cost to be clamped to 0, got %d", cfg.BcryptCost)
	}
}

func TestReaperConfig_Sanitize(t *testing.T) {
	cfg := ReaperConfig{Interval: 5 * time.Millisecond}
	cfg.Sanitize()
	if cfg.Interval != time.Second {
		t.Fatalf("expected interval to be clamped to 1s, got %v", cfg.Interval)
	}

	cfg = ReaperConfig{Interval: 2 * time.Minute}
	cfg.Sanitize()
	if cfg.Interval != 2*time.Minute {
		t.Fatalf("expected interval to be preserved, got %v", cfg.Interval)
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg := AppConfig{Auth: AuthConfig{DefaultUserTTLMinutes: 1}, Reaper: ReaperConfig{Interval: time.Minute}}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Fatal("expected APP_ENV=development to enable dev mode")
	}
}
