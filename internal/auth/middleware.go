// Package auth guards front-end routes: pages that need a session and
// state-changing form posts.
package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SignInPath is where signed-out users are sent
const SignInPath = "/signin"

// SessionChecker reports whether a session token is stored
type SessionChecker interface {
	SignedIn() bool
}

// RequireSession redirects to the sign-in page when no token is stored
func RequireSession(s SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !s.SignedIn() {
				return c.Redirect(http.StatusSeeOther, SignInPath)
			}
			return next(c)
		}
	}
}
