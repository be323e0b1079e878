package contextx

import (
	"context"
	"fmt"
)

// AuthToken is the bearer token of the inbound request. It is forwarded
// as-is to external services (the gateway does not verify it itself).
type AuthToken string

type contextKeyAuthToken struct{}

func (t AuthToken) String() string {
	return string(t)
}

func WithAuthToken(ctx context.Context, token AuthToken) context.Context {
	return context.WithValue(ctx, contextKeyAuthToken{}, token)
}

func AuthTokenFromContext(ctx context.Context) (AuthToken, error) {
	token, ok := ctx.Value(contextKeyAuthToken{}).(AuthToken)
	if !ok {
		return "", fmt.Errorf("auth token: %w", ErrNoValue)
	}

	return token, nil
}
