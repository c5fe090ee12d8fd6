package config

import (
	"time"

	"github.com/joho/godotenv"
)

// ClientConfig configures a game client talking to the validation server
type ClientConfig struct {
	BaseURL        string
	Token          string
	SigningKey     string
	EncryptionKey  string
	Retries        int
	RetryDelay     time.Duration
	Timeout        time.Duration
	StatePath      string
	KeyringService string
	KeyringUser    string
}

// LoadClient loads the client configuration from environment variables.
// Secrets left empty here may still come from the OS keyring.
func LoadClient() *ClientConfig {
	_ = godotenv.Load()

	return &ClientConfig{
		BaseURL:        getEnv("SLOTGUARD_URL", DefaultClientBaseURL),
		Token:          getEnv("SLOTGUARD_TOKEN", ""),
		SigningKey:     getEnv("REQUEST_SIGNING_KEY", ""),
		EncryptionKey:  getEnv("CLIENT_ENCRYPTION_KEY", ""),
		Retries:        getEnvAsInt("CLIENT_RETRIES", DefaultClientRetries),
		RetryDelay:     getEnvAsDuration("CLIENT_RETRY_DELAY", DefaultClientRetryDelay),
		Timeout:        getEnvAsDuration("CLIENT_TIMEOUT", DefaultClientTimeout),
		StatePath:      getEnv("CLIENT_STATE_PATH", DefaultClientStatePath),
		KeyringService: getEnv("KEYRING_SERVICE", DefaultKeyringService),
		KeyringUser:    getEnv("KEYRING_USER", ""),
	}
}
