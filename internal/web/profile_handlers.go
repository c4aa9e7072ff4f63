package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogdeck/internal/client"
	"blogdeck/internal/fetch"
	"blogdeck/internal/models"
)

// profilePage is the data of the profile page
type profilePage struct {
	User       *models.UserProfile
	Posts      []models.Post
	PostsError string
}

func (s *Server) showProfile(c echo.Context) error {
	ctx, cancel := s.settle(c)
	defer cancel()

	user := fetch.NewCurrentUserHook(s.api)
	defer user.Close()
	posts := fetch.NewOwnPostsHook(s.api)
	defer posts.Close()

	user.Set(fetch.None{})
	posts.Set(fetch.None{})
	us, _ := user.Wait(ctx)
	ps, _ := posts.Wait(ctx)

	if us.Failed() || ps.Failed() {
		if lost, err := s.lostSession(c); lost {
			return err
		}
	}

	p := page{
		Title: "Profile",
		Data: profilePage{
			User:       us.Value,
			Posts:      ps.Value,
			PostsError: fetch.OwnPostsMessage(ps.Err),
		},
	}
	if us.Failed() {
		p.Error = client.Message(us.Err)
	}
	return s.render(c, http.StatusOK, "profile", p)
}

func (s *Server) updateBio(c echo.Context) error {
	ctx, cancel := s.settle(c)
	defer cancel()

	if !fetch.UpdateBio(ctx, s.api, c.FormValue("bio")) {
		if lost, err := s.lostSession(c); lost {
			return err
		}
		setFlashError(c, "Failed to update bio")
		return c.Redirect(http.StatusSeeOther, "/profile")
	}

	setFlash(c, "Bio updated successfully!")
	return c.Redirect(http.StatusSeeOther, "/profile")
}
