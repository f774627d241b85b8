package jwtx

import "crypto"

// Signer is our interface for anything that can sign claims into a JWT.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	Public() crypto.PublicKey
	Validate() error
}

// NewSignerRS256 creates an RS256 signer from PEM bytes. If kid is empty, a
// stable fingerprint of the public key is used, so the same persisted key
// keeps the same kid across restarts.
func NewSignerRS256(kid string, pemKey []byte) (Signer, error) {
	return newRS256Signer(kid, pemKey)
}
