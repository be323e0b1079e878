package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"floor_predictor/pkg/contextx"
)

func TestAuthToken(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var testTokenEmpty contextx.AuthToken

	testTokenNotEmpty := contextx.AuthToken("test-bearer-token")

	token, err := contextx.AuthTokenFromContext(ctx)
	rq.Equal(testTokenEmpty, token)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "auth token: no value in context")

	ctx = contextx.WithAuthToken(ctx, testTokenNotEmpty)

	token, err = contextx.AuthTokenFromContext(ctx)
	rq.Equal(testTokenNotEmpty, token)
	rq.NoError(err)
}
