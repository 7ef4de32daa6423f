package auth

import (
	"encoding/json"
	"strings"

	xhttp "github.com/finbook/bookkeeper/pkg/http"
)

const userIDKey = "auth_user_id"

// Middleware rejects requests without a valid access token and stashes the
// resolved user id on the request context. Paths under a public prefix
// pass through untouched.
func Middleware(tm *TokenManager, publicPrefixes ...string) xhttp.MiddlewareFunc {
	return func(next xhttp.RequestHandler) xhttp.RequestHandler {
		return func(ctx *xhttp.RequestCtx) {
			path := string(ctx.Path())
			for _, p := range publicPrefixes {
				if strings.HasPrefix(path, p) {
					next(ctx)
					return
				}
			}

			const bearer = "Bearer "
			header := string(ctx.Request.Header.Peek("Authorization"))
			if !strings.HasPrefix(header, bearer) {
				unauthorized(ctx)
				return
			}

			userID, err := tm.VerifyAccess(strings.TrimSpace(header[len(bearer):]))
			if err != nil {
				unauthorized(ctx)
				return
			}

			ctx.SetUserValue(userIDKey, userID)
			next(ctx)
		}
	}
}

// UserID returns the authenticated user id placed on the context by
// Middleware.
func UserID(ctx *xhttp.RequestCtx) (int64, bool) {
	v, ok := ctx.UserValue(userIDKey).(int64)
	return v, ok
}

// SetUserID is for tests that exercise handlers without the middleware.
func SetUserID(ctx *xhttp.RequestCtx, userID int64) {
	ctx.SetUserValue(userIDKey, userID)
}

func unauthorized(ctx *xhttp.RequestCtx) {
	body, _ := json.Marshal(map[string]string{
		"error": "Authentication credentials were not provided or are invalid.",
	})
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(xhttp.StatusUnauthorized)
	ctx.Response.SetBodyRaw(body)
}
