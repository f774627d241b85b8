package app

import (
	"fmt"
	"log/slog"

	"github.com/linkforge/uriadmin/pkg/jwtx"
)

// InitAuthKeys loads the RSA signing key from disk, generating and
// persisting one on first startup. Because the key file survives restarts,
// outstanding tokens stay valid across deploys.
//
// A key file that exists but cannot be parsed aborts startup rather than
// being regenerated; replacing the key silently would invalidate every
// outstanding token without anyone noticing.
func InitAuthKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	keyManager, err := jwtx.NewFileKeyManager(jwtx.FileKeyManagerOptions{
		Path:    cfg.RSAKeyFile,
		RSABits: cfg.RSABits,
		Issuer:  cfg.Issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}

	if keyManager.Generated() {
		logger.Info("generated new RSA signing key",
			"path", cfg.RSAKeyFile,
			"kid", keyManager.Signer.KID(),
		)
	} else {
		logger.Info("loaded RSA signing key",
			"path", cfg.RSAKeyFile,
			"kid", keyManager.Signer.KID(),
		)
	}

	return keyManager, nil
}
