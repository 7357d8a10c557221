package api

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/identity"
)

type keyType string

const authStateKey keyType = "authState"

// ctxWithAuthState attaches the request's account-authentication state to
// the context. The auth middleware is the only writer.
func ctxWithAuthState(ctx context.Context, auth identity.AuthState) context.Context {
	return context.WithValue(ctx, authStateKey, auth)
}

// authStateFromCtx retrieves the account-authentication state from the
// context. A request that never passed the auth middleware, or that
// carried no token, reads back as unauthenticated.
func authStateFromCtx(ctx context.Context) identity.AuthState {
	auth, _ := ctx.Value(authStateKey).(identity.AuthState)
	return auth
}
