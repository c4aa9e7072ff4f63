package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"blogdeck/internal/client"
	"blogdeck/internal/models"
)

// authForm is the data of the sign-in and sign-up pages
type authForm struct {
	Mode  string
	Name  string
	Email string
}

func (s *Server) signinForm(c echo.Context) error {
	if s.api.SignedIn() {
		return c.Redirect(http.StatusSeeOther, "/blogs")
	}
	return s.render(c, http.StatusOK, "auth", page{Title: "Sign in", Data: authForm{Mode: "signin"}})
}

func (s *Server) signupForm(c echo.Context) error {
	if s.api.SignedIn() {
		return c.Redirect(http.StatusSeeOther, "/blogs")
	}
	return s.render(c, http.StatusOK, "auth", page{Title: "Sign up", Data: authForm{Mode: "signup"}})
}

func (s *Server) signin(c echo.Context) error {
	in := models.SigninInput{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}
	if err := s.api.Signin(c.Request().Context(), in); err != nil {
		return s.render(c, statusFor(err), "auth", page{
			Title: "Sign in",
			Error: client.Message(err),
			Data:  authForm{Mode: "signin", Email: in.Email},
		})
	}

	s.view.Refresh()
	return c.Redirect(http.StatusSeeOther, "/blogs")
}

func (s *Server) signup(c echo.Context) error {
	in := models.SignupInput{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}
	if err := s.api.Signup(c.Request().Context(), in); err != nil {
		return s.render(c, statusFor(err), "auth", page{
			Title: "Sign up",
			Error: client.Message(err),
			Data:  authForm{Mode: "signup", Name: in.Name, Email: in.Email},
		})
	}

	s.view.Refresh()
	return c.Redirect(http.StatusSeeOther, "/blogs")
}

func (s *Server) logout(c echo.Context) error {
	if err := s.api.Signout(); err != nil {
		c.Logger().Error("sign out error: ", err)
		return s.render(c, http.StatusInternalServerError, "auth", page{
			Title: "Sign in",
			Error: "Failed to sign out",
			Data:  authForm{Mode: "signin"},
		})
	}
	s.view.Refresh()
	return c.Redirect(http.StatusSeeOther, "/signin")
}

// statusFor maps a client error to the status of the page showing it
func statusFor(err error) int {
	var ce *client.Error
	if !errors.As(err, &ce) {
		return http.StatusBadGateway
	}
	switch ce.Kind {
	case client.KindValidation:
		return http.StatusBadRequest
	case client.KindAuth:
		return http.StatusUnauthorized
	case client.KindServer:
		if ce.Status >= 400 && ce.Status < 500 {
			return ce.Status
		}
	}
	return http.StatusBadGateway
}
