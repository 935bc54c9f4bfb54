package config

// SeedAdminConfig controls the permanent administrator seeded at startup
// when no account with that username exists yet.
type SeedAdminConfig struct {
	Username string `env:"USERNAME" envDefault:"admin"`
	Password string `env:"PASSWORD" envDefault:"admin123"`
}

// AuthConfig groups session and account lifecycle configuration.
type AuthConfig struct {
	// SessionSecret signs session tokens. Required; there is no safe default.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// TokenIssuer is the issuer claim stamped on session tokens.
	TokenIssuer string `env:"SESSION_ISSUER" envDefault:"tasklight"`

	// BcryptCost is the bcrypt work factor for credential hashing.
	// Zero selects the library default.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"0"`

	// DefaultUserTTLMinutes bounds the lifetime of user-role accounts
	// provisioned without an explicit TTL. Admin accounts without an
	// explicit TTL are permanent.
	DefaultUserTTLMinutes int `env:"DEFAULT_USER_TTL_MINUTES" envDefault:"1"`

	// SeedAdmin configures the startup-seeded administrator.
	SeedAdmin SeedAdminConfig `envPrefix:"SEED_ADMIN_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.DefaultUserTTLMinutes < 1 {
		a.DefaultUserTTLMinutes = 1
	}
	if a.BcryptCost < 0 {
		a.BcryptCost = 0
	}
}
