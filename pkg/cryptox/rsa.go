package cryptox

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// GenerateRSAKeyPKCS8 generates a new RSA private key and returns it as a
// PKCS8 PEM block. 2048 bits is the floor; anything smaller is refused.
func GenerateRSAKeyPKCS8(bits int) ([]byte, error) {
	if bits < 2048 {
		return nil, fmt.Errorf("cryptox: RSA key size must be at least 2048 bits")
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate RSA key: %w", err)
	}

	privateKeyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal PKCS8 key: %w", err)
	}

	privateKeyPEM := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: privateKeyBytes,
	}

	return pem.EncodeToMemory(privateKeyPEM), nil
}

// LoadOrGenerateRSAKey returns the PEM private key at path, generating and
// persisting a fresh one only when the file does not exist yet. The
// generated bool tells the caller which branch was taken so it can log it.
//
// A file that exists but cannot be read is surfaced as an error rather than
// regenerated: silently minting a new key would invalidate every token
// signed with the old one.
func LoadOrGenerateRSAKey(path string, bits int) (pemKey []byte, generated bool, err error) {
	pemKey, err = os.ReadFile(path)
	if err == nil {
		return pemKey, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, fmt.Errorf("cryptox: read key file %s: %w", path, err)
	}

	pemKey, err = GenerateRSAKeyPKCS8(bits)
	if err != nil {
		return nil, false, err
	}

	if err := os.WriteFile(path, pemKey, 0o600); err != nil {
		return nil, false, fmt.Errorf("cryptox: persist key file %s: %w", path, err)
	}

	return pemKey, true, nil
}
