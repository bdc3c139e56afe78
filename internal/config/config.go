package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hardy-ethan/UMichEmailVerifier/internal/domain"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/pkg/validate"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string `validate:"required,numeric"`
	AppEnv   string
	LogLevel slog.Level
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// friends. Enable only when a reverse proxy sets them.
	TrustProxyHeaders bool

	DiscordToken   string              `validate:"required"`
	ServerID       string              `validate:"required,numeric"`
	VerifiedRoleID string              `validate:"required,numeric"`
	CommandScope   domain.CommandScope `validate:"oneof=guild global"`
	// RequireConfiguredGuild rejects /verify invoked from any guild other than ServerID.
	RequireConfiguredGuild bool

	GoogleClientID     string `validate:"required"`
	GoogleClientSecret string `validate:"required"`
	GoogleRedirectURI  string `validate:"required,url"`
	// AllowedDomain is empty when the domain restriction is left to the Google project.
	AllowedDomain string `validate:"omitempty,fqdn"`

	InstitutionName string `validate:"required"`

	VerificationTTL time.Duration `validate:"gt=0"`
	SweepInterval   time.Duration `validate:"gt=0"`
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:  getEnv("PORT", "3000"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: parseLevel(getEnv("LOG_LEVEL", "info")),

		TrustProxyHeaders: getEnvBool("TRUST_PROXY_HEADERS", false),

		DiscordToken:           getEnv("DISCORD_TOKEN", ""),
		ServerID:               getEnv("SERVER_ID", ""),
		VerifiedRoleID:         getEnv("VERIFIED_ROLE_ID", ""),
		CommandScope:           domain.CommandScope(getEnv("COMMAND_SCOPE", string(domain.CommandScopeGuild))),
		RequireConfiguredGuild: getEnvBool("REQUIRE_CONFIGURED_GUILD", true),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", ""),
		AllowedDomain:      strings.ToLower(getEnv("ALLOWED_DOMAIN", "")),

		InstitutionName: getEnv("INSTITUTION_NAME", "UMich"),

		VerificationTTL: time.Duration(getEnvInt("VERIFICATION_TTL_MINUTES", 15)) * time.Minute,
		SweepInterval:   time.Duration(getEnvInt("SWEEP_INTERVAL_SECONDS", 60)) * time.Second,
	}
}

// Validate reports every missing or malformed setting at once.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction is true when APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
