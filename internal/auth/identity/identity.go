// Package identity resolves the request-scoped user context from validated
// token claims. Resolution is lazy: nothing is parsed until the first
// consumer asks, and the result is memoized for the rest of the request.
package identity

import (
	"errors"
)

// AnonymousName is the sentinel display value for unauthenticated requests.
const AnonymousName = "Anonymous"

// ErrMalformedToken reports claims that assert authentication but carry an
// unparseable identity. This is deliberately not a downgrade to anonymous:
// a token that claims to be someone must either resolve or fail the request.
var ErrMalformedToken = errors.New("identity: malformed token claims")

// UserContext is the immutable per-request identity. The anonymous variant
// has UserID 0 and sentinel display values.
type UserContext struct {
	UserID     int64
	Username   string
	Nickname   string
	Email      string
	Properties map[string]string
}

// IsAnonymous reports whether this context carries no authenticated user.
func (uc *UserContext) IsAnonymous() bool {
	return uc == nil || uc.UserID == 0
}

// Anonymous returns the sentinel context used when a request carries no
// authenticated principal.
func Anonymous() *UserContext {
	return &UserContext{
		UserID:   0,
		Username: AnonymousName,
		Nickname: AnonymousName,
		Email:    "",
	}
}
