package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/ratelimit"
)

// ExpectedEnvSchemaVersion is the .env layout this build reads
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be set for the server to start. DB_URL replaces the
// individual DB_* variables.
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"AUTH_TOKEN_SECRET",
}

// secretRule flags a secret left at its .env.example value or too short to
// be a real HMAC key
type secretRule struct {
	name     string
	example  string
	minLen   int
	unsetMsg string
}

var secretRules = []secretRule{
	{name: "DB_PASSWORD", example: ExampleDBPassword},
	{name: "AUTH_TOKEN_SECRET", example: ExampleAuthTokenSecret, minLen: MinSecretLength},
	{
		name:     "REQUEST_SIGNING_KEY",
		example:  ExampleSigningKey,
		minLen:   MinSecretLength,
		unsetMsg: "REQUEST_SIGNING_KEY is not set - request signatures will not be enforced",
	},
}

func (r secretRule) check() (string, bool) {
	value := os.Getenv(r.name)
	switch {
	case value == "":
		return r.unsetMsg, r.unsetMsg != ""
	case value == r.example:
		return fmt.Sprintf("%s appears to be using the example value - generate a secure key with: openssl rand -hex 32", r.name), true
	case r.minLen > 0 && len(value) < r.minLen:
		return fmt.Sprintf("%s is shorter than %d characters", r.name, r.minLen), true
	}
	return "", false
}

// ValidateEnv checks the schema version and that every required variable is set
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}
	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	hasURL := os.Getenv("DB_URL") != ""
	var missing []string
	for _, envVar := range RequiredEnvVars {
		if hasURL && strings.HasPrefix(envVar, "DB_") {
			continue
		}
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and reports settings that work
// but should not reach production
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, rule := range secretRules {
		if msg, bad := rule.check(); bad {
			warnings = append(warnings, msg)
		}
	}

	if os.Getenv("ENVIRONMENT") == logger.EnvironmentProduction &&
		os.Getenv("RATE_LIMIT_BACKEND") == ratelimit.BackendMemory {
		warnings = append(warnings, "RATE_LIMIT_BACKEND=memory in production - limits are not shared between instances")
	}

	return warnings, nil
}
