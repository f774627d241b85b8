package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Tuned for interactive logins; bump memory before
// iterations if these ever need to get more expensive.
const (
	saltLength  = 16
	iterations  = 3
	memory      = 64 * 1024
	parallelism = 2
	keyLength   = 32
)

// HashSecret derives an Argon2id hash from a secret with a fresh random
// salt. Hash and salt are returned separately (base64, no padding) so they
// can live in separate columns on the credential record.
func HashSecret(secret string) (hash, salt string, err error) {
	rawSalt := make([]byte, saltLength)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", err
	}

	rawHash := argon2.IDKey([]byte(secret), rawSalt, iterations, memory, parallelism, keyLength)

	return base64.RawStdEncoding.EncodeToString(rawHash),
		base64.RawStdEncoding.EncodeToString(rawSalt),
		nil
}

// VerifySecret reports whether secret matches a stored hash+salt pair.
//
// It deliberately returns a bare bool: a corrupt stored hash, bad base64, or
// any other internal problem reads as "no match". Callers must not be able
// to distinguish why verification failed, otherwise login errors leak
// information about the stored credential.
func VerifySecret(secret, hash, salt string) bool {
	rawSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(hash)
	if err != nil || len(expected) == 0 {
		return false
	}

	computed := argon2.IDKey([]byte(secret), rawSalt, iterations, memory, parallelism,
		uint32(len(expected))) // #nosec G115 - hash lengths are tiny

	return subtle.ConstantTimeCompare(computed, expected) == 1
}
