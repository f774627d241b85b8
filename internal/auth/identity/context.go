package identity

import (
	"context"
	"strconv"
	"sync"

	"github.com/linkforge/uriadmin/pkg/jwtx"
)

type ctxKey struct{}

// holder defers claim parsing until the first FromContext call and caches
// the outcome for the rest of the request.
type holder struct {
	claims *jwtx.Claims

	once sync.Once
	uc   *UserContext
	err  error
}

// WithClaims stashes validated token claims on the context. The claims are
// not resolved into a UserContext here; that happens lazily on first use.
func WithClaims(ctx context.Context, claims *jwtx.Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, &holder{claims: claims})
}

// FromContext returns the request's user context.
//
// A context without any principal (no WithClaims, or nil claims) resolves
// to the anonymous identity. Claims whose subject cannot be parsed into a
// user id return ErrMalformedToken instead; that case must surface as a
// request failure, never as a silent anonymous downgrade.
func FromContext(ctx context.Context) (*UserContext, error) {
	h, ok := ctx.Value(ctxKey{}).(*holder)
	if !ok {
		return Anonymous(), nil
	}

	h.once.Do(func() {
		h.uc, h.err = resolve(h.claims)
	})
	return h.uc, h.err
}

func resolve(claims *jwtx.Claims) (*UserContext, error) {
	if claims == nil {
		return Anonymous(), nil
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrMalformedToken
	}

	return &UserContext{
		UserID:   userID,
		Username: claims.Username,
		Nickname: claims.Nickname,
		Email:    claims.Email,
		Properties: map[string]string{
			"sid": claims.SID,
		},
	}, nil
}
