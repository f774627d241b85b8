package jwtx

// Verifier checks a raw token string and returns its parsed claims. The
// signature is validated here; issuer, expiry and token-type checks happen
// on the returned claims so callers can surface distinct failures.
type Verifier interface {
	Verify(tokenStr string) (*Claims, error)
}
