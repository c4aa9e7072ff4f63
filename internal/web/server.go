// Package web serves the blogdeck front end: HTML pages rendered from the
// fetch hooks and list view, plus a websocket stream of list state.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"blogdeck/internal/auth"
	"blogdeck/internal/fetch"
	"blogdeck/internal/listview"
	"blogdeck/internal/models"
)

// DefaultWaitTimeout bounds how long a page waits for its fetches to settle
const DefaultWaitTimeout = 10 * time.Second

// API is the remote blogging service as seen by the front end
type API interface {
	fetch.Resources
	fetch.Mutations
	Signup(ctx context.Context, in models.SignupInput) error
	Signin(ctx context.Context, in models.SigninInput) error
	Signout() error
	SignedIn() bool
}

// Server routes requests to the page handlers
type Server struct {
	e           *echo.Echo
	api         API
	view        *listview.View
	csrf        *auth.CSRFProtection
	waitTimeout time.Duration
}

// Option configures a Server
type Option func(*Server)

// WithWaitTimeout overrides DefaultWaitTimeout
func WithWaitTimeout(d time.Duration) Option {
	return func(s *Server) { s.waitTimeout = d }
}

// New builds the echo instance and registers every route
func New(api API, view *listview.View, renderer echo.Renderer, opts ...Option) *Server {
	s := &Server{
		e:           echo.New(),
		api:         api,
		view:        view,
		csrf:        auth.NewCSRFProtection(),
		waitTimeout: DefaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.e.HideBanner = true
	s.e.Renderer = renderer

	// Middleware
	s.e.Use(middleware.Logger())
	s.e.Use(middleware.Recover())
	s.e.Use(s.csrf.Middleware())

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	e := s.e

	e.GET("/health", healthCheck)
	e.GET("/", s.home)

	// Sign in and sign up (public)
	e.GET("/signin", s.signinForm)
	e.POST("/signin", s.signin)
	e.GET("/signup", s.signupForm)
	e.POST("/signup", s.signup)
	e.POST("/logout", s.logout)

	// Pages that need a stored token
	protected := e.Group("")
	protected.Use(auth.RequireSession(s.api))
	protected.GET("/blogs", s.listBlogs)
	protected.POST("/blogs/next", s.nextPage)
	protected.POST("/blogs/prev", s.prevPage)
	protected.GET("/ws/blogs", s.streamBlogs)
	protected.GET("/blog/:id", s.showBlog)
	protected.GET("/blog/:id/delete", s.confirmDelete)
	protected.POST("/blog/:id/delete", s.deleteBlog)
	protected.GET("/profile", s.showProfile)
	protected.POST("/profile/bio", s.updateBio)
	protected.GET("/publish", s.publishForm)
	protected.POST("/publish", s.publish)
}

// ServeHTTP makes the server usable as an http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Start listens on addr
func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Shutdown stops the listener and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// CSRFToken returns the token form posts must carry
func (s *Server) CSRFToken() string {
	return s.csrf.Token()
}

// page is the data every template receives
type page struct {
	Title    string
	SignedIn bool
	CSRF     string
	Flash    string
	Error    string
	Data     any
}

func (s *Server) render(c echo.Context, code int, name string, p page) error {
	p.SignedIn = s.api.SignedIn()
	p.CSRF, _ = c.Get(auth.ContextKeyCSRF).(string)
	if msg := popOnce(c, flashCookie); p.Flash == "" {
		p.Flash = msg
	}
	if msg := popOnce(c, errorCookie); p.Error == "" {
		p.Error = msg
	}
	return c.Render(code, name, p)
}

// settle bounds the wait for hooks started by a request
func (s *Server) settle(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), s.waitTimeout)
}

// lostSession reports whether a failed call left the user signed out. The
// client clears the token on every auth failure.
func (s *Server) lostSession(c echo.Context) (bool, error) {
	if s.api.SignedIn() {
		return false, nil
	}
	return true, c.Redirect(http.StatusSeeOther, auth.SignInPath)
}

func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (s *Server) home(c echo.Context) error {
	if s.api.SignedIn() {
		return c.Redirect(http.StatusSeeOther, "/blogs")
	}
	return c.Redirect(http.StatusSeeOther, auth.SignInPath)
}
