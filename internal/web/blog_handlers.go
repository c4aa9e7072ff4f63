package web

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"blogdeck/internal/client"
	"blogdeck/internal/fetch"
	"blogdeck/internal/listview"
	"blogdeck/internal/models"
)

// blogPage is the data of the single post page
type blogPage struct {
	Post      *models.Post
	AuthorBio string
	IsAuthor  bool
}

// publishForm is the data of the publish page
type publishForm struct {
	Title   string
	Content string
}

// listBlogs renders the list view. q and sort are kept by the view, so
// they only change when the request carries them.
func (s *Server) listBlogs(c echo.Context) error {
	params := c.QueryParams()
	if params.Has("q") {
		s.view.SetQuery(strings.TrimSpace(params.Get("q")))
	}
	if params.Has("sort") {
		s.view.SetOrder(listview.ParseOrder(params.Get("sort")))
	}

	ctx, cancel := s.settle(c)
	defer cancel()
	s.view.Wait(ctx)
	snap := s.view.Snapshot()

	if client.IsKind(snap.Err, client.KindAuth) {
		if lost, err := s.lostSession(c); lost {
			return err
		}
		// The page failed before the current token was stored
		s.view.Refresh()
		s.view.Wait(ctx)
		snap = s.view.Snapshot()
	}

	p := page{Title: "Blogs", Data: snap}
	if snap.Err != nil {
		p.Error = client.Message(snap.Err)
	}
	return s.render(c, http.StatusOK, "blogs", p)
}

func (s *Server) nextPage(c echo.Context) error {
	s.view.Next()
	return c.Redirect(http.StatusSeeOther, "/blogs")
}

func (s *Server) prevPage(c echo.Context) error {
	s.view.Prev()
	return c.Redirect(http.StatusSeeOther, "/blogs")
}

// loadPost fetches a post through a short-lived hook
func (s *Server) loadPost(c echo.Context, id string) fetch.State[*models.Post] {
	ctx, cancel := s.settle(c)
	defer cancel()

	h := fetch.NewPostHook(s.api)
	defer h.Close()
	h.Set(id)
	st, _ := h.Wait(ctx)
	return st
}

// postError renders the blog page for a post that could not be loaded
func (s *Server) postError(c echo.Context, st fetch.State[*models.Post]) error {
	if lost, err := s.lostSession(c); lost {
		return err
	}
	msg := "This blog could not be loaded"
	if st.Err != nil {
		msg = client.Message(st.Err)
	}
	return s.render(c, statusFor(st.Err), "blog", page{Title: "Blog", Error: msg, Data: blogPage{}})
}

func (s *Server) showBlog(c echo.Context) error {
	ctx, cancel := s.settle(c)
	defer cancel()

	post := fetch.NewPostHook(s.api)
	defer post.Close()
	user := fetch.NewCurrentUserHook(s.api)
	defer user.Close()

	post.Set(c.Param("id"))
	user.Set(fetch.None{})
	ps, _ := post.Wait(ctx)
	if ps.Value == nil {
		return s.postError(c, ps)
	}
	us, _ := user.Wait(ctx)
	if us.Failed() {
		if lost, err := s.lostSession(c); lost {
			return err
		}
	}

	data := blogPage{Post: ps.Value}
	if id := ps.Value.Author.ID; id != "" {
		author := fetch.NewAuthorHook(s.api)
		defer author.Close()
		author.Set(id)
		if as, _ := author.Wait(ctx); as.Value != nil {
			data.AuthorBio = as.Value.Bio
		}
		data.IsAuthor = us.Value != nil && us.Value.ID == id
	}

	return s.render(c, http.StatusOK, "blog", page{Title: ps.Value.Title, Data: data})
}

func (s *Server) confirmDelete(c echo.Context) error {
	st := s.loadPost(c, c.Param("id"))
	if st.Value == nil {
		return s.postError(c, st)
	}
	return s.render(c, http.StatusOK, "confirm_delete", page{Title: "Delete blog", Data: st.Value})
}

func (s *Server) deleteBlog(c echo.Context) error {
	id := c.Param("id")
	ctx, cancel := s.settle(c)
	defer cancel()

	if !fetch.DeletePost(ctx, s.api, id) {
		if lost, err := s.lostSession(c); lost {
			return err
		}
		setFlashError(c, "Failed to delete blog post")
		return c.Redirect(http.StatusSeeOther, "/blog/"+id)
	}

	s.view.Refresh()
	setFlash(c, "Deleted! Your blog has been deleted.")
	return c.Redirect(http.StatusSeeOther, "/blogs")
}

func (s *Server) publishForm(c echo.Context) error {
	return s.render(c, http.StatusOK, "publish", page{Title: "Publish", Data: publishForm{}})
}

func (s *Server) publish(c echo.Context) error {
	in := models.CreatePostInput{
		Title:   strings.TrimSpace(c.FormValue("title")),
		Content: c.FormValue("content"),
	}
	form := publishForm{Title: in.Title, Content: in.Content}

	if in.Title == "" || strings.TrimSpace(in.Content) == "" {
		return s.render(c, http.StatusBadRequest, "publish", page{
			Title: "Publish",
			Error: "Please provide both title and content",
			Data:  form,
		})
	}

	ctx, cancel := s.settle(c)
	defer cancel()

	id, ok := fetch.CreatePost(ctx, s.api, in)
	if !ok {
		if lost, err := s.lostSession(c); lost {
			return err
		}
		return s.render(c, http.StatusBadGateway, "publish", page{
			Title: "Publish",
			Error: "Error publishing blog post",
			Data:  form,
		})
	}

	s.view.Refresh()
	setFlash(c, "Your blog has been published.")
	return c.Redirect(http.StatusSeeOther, "/blog/"+id)
}
