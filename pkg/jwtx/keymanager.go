package jwtx

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/linkforge/uriadmin/pkg/cryptox"
)

// ErrKeyMaterial marks unusable signing key material. It is the one fatal
// condition in this package: it aborts startup rather than a request.
var ErrKeyMaterial = errors.New("jwtx: key material unavailable")

// KeyManager bundles the process-wide signing key with its verifier. It is
// built once during startup wiring and never mutated afterwards.
type KeyManager struct {
	Signer   Signer
	Verifier Verifier
	KeySet   *KeySet

	generated bool
}

// FileKeyManagerOptions configures a KeyManager backed by a single PEM key
// file on disk.
type FileKeyManagerOptions struct {
	// Path of the PEM-encoded RSA private key. Created on first startup.
	Path string

	// RSABits is the key size used when generating a new key.
	// Defaults to 2048.
	RSABits int

	// Issuer is the issuer claim (iss) minted into and validated on tokens.
	Issuer string
}

// NewFileKeyManager loads the signing key from opts.Path, generating and
// persisting one if the file does not exist yet. That decision happens once,
// serialized with the rest of startup wiring, so there is no runtime
// generation race.
//
// A file that exists but cannot be parsed is ErrKeyMaterial, never a
// trigger for regeneration: a silently replaced key would invalidate every
// outstanding token.
func NewFileKeyManager(opts FileKeyManagerOptions) (*KeyManager, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("%w: key file path is required", ErrKeyMaterial)
	}
	if opts.RSABits == 0 {
		opts.RSABits = 2048
	}

	pemKey, generated, err := cryptox.LoadOrGenerateRSAKey(opts.Path, opts.RSABits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyMaterial, err)
	}

	signer, err := NewSignerRS256("", pemKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyMaterial, err)
	}

	keyset := NewKeySet()
	if err := keyset.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyMaterial, err)
	}

	return &KeyManager{
		Signer:    signer,
		Verifier:  NewVerifierRS256(keyset, opts.Issuer),
		KeySet:    keyset,
		generated: generated,
	}, nil
}

// Generated reports whether this startup minted a fresh key pair instead of
// loading a persisted one.
func (km *KeyManager) Generated() bool {
	return km.generated
}

// PublicKeyPEM exports the verification key as a PEM block, for validators
// running out of process.
func (km *KeyManager) PublicKeyPEM() ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(km.Signer.Public())
	if err != nil {
		return nil, fmt.Errorf("jwtx: marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}
