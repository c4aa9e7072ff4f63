package web

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// Cookies carrying one-shot messages across a redirect
const (
	flashCookie = "blogdeck_flash"
	errorCookie = "blogdeck_error"
)

// setFlash stores a message shown once on the next rendered page
func setFlash(c echo.Context, msg string) {
	setOnce(c, flashCookie, msg)
}

// setFlashError is setFlash for failures
func setFlashError(c echo.Context, msg string) {
	setOnce(c, errorCookie, msg)
}

func setOnce(c echo.Context, name, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popOnce returns the pending message stored under name and expires it
func popOnce(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil || cookie.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:   name,
		Path:   "/",
		MaxAge: -1,
	})
	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}
