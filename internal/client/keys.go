package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/osse101/SlotGuard_Go/internal/config"
	"github.com/osse101/SlotGuard_Go/internal/logger"
)

// LoadSecrets fills the token, signing key and encryption key from the OS
// keyring. Values already set in cfg win; a missing entry or an unavailable
// keyring leaves the environment value in place.
func LoadSecrets(ctx context.Context, cfg *config.ClientConfig) error {
	if cfg.KeyringUser == "" {
		return nil
	}

	fields := []struct {
		name string
		dst  *string
	}{
		{SecretToken, &cfg.Token},
		{SecretSigningKey, &cfg.SigningKey},
		{SecretEncryptionKey, &cfg.EncryptionKey},
	}

	for _, f := range fields {
		if *f.dst != "" {
			continue
		}
		val, err := keyring.Get(cfg.KeyringService, secretKey(cfg.KeyringUser, f.name))
		switch {
		case err == nil:
			*f.dst = val
		case errors.Is(err, keyring.ErrNotFound):
			logger.FromContext(ctx).Debug(LogMsgKeyringFallback, LogFieldSecret, f.name)
		default:
			return fmt.Errorf("%s %s: %w", ErrMsgKeyringGet, f.name, err)
		}
	}
	return nil
}

// StoreSecret saves one named secret for cfg.KeyringUser
func StoreSecret(cfg *config.ClientConfig, name, value string) error {
	if cfg.KeyringUser == "" {
		return errors.New(ErrMsgKeyringUser)
	}
	if err := keyring.Set(cfg.KeyringService, secretKey(cfg.KeyringUser, name), value); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgKeyringSet, name, err)
	}
	return nil
}

func secretKey(user, name string) string {
	return fmt.Sprintf("%s/%s", user, name)
}
