package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fairdraw/backend/internal/model"
	"github.com/fairdraw/backend/pkg/authenticator"
	"github.com/fairdraw/backend/pkg/errorx"
	"github.com/fairdraw/backend/pkg/router"
	"github.com/fairdraw/backend/pkg/xcontext"
)

// Authenticate verifies the access token of the request and attaches the
// user id to the context. The token comes from the Authorization header or,
// failing that, the configured cookie.
func Authenticate(engine authenticator.TokenEngine[model.AccessToken]) router.MiddlewareFunc {
	return func(ctx context.Context, r *http.Request) (context.Context, error) {
		token := extractToken(ctx, r)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Require authentication")
		}

		accessToken, err := engine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

func extractToken(ctx context.Context, r *http.Request) string {
	auth, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if found {
		if auth == "Bearer" {
			return token
		}

		return ""
	}

	cookie, err := r.Cookie(xcontext.Configs(ctx).Auth.AccessTokenName)
	if err != nil {
		return ""
	}

	return cookie.Value
}
