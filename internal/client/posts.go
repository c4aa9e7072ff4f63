package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"blogdeck/internal/models"
)

// wirePost is a post as the API encodes it
type wirePost struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Author    *models.Author `json:"author"`
	CreatedAt string         `json:"createdAt"`
}

func (w wirePost) toPost(op string) (models.Post, error) {
	p := models.Post{ID: w.ID, Title: w.Title, Content: w.Content}
	if w.Author != nil {
		p.Author = *w.Author
	}
	if w.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, w.CreatedAt)
		if err != nil {
			return models.Post{}, &Error{Kind: KindPartialData, Op: op, Message: "invalid createdAt " + strconv.Quote(w.CreatedAt), Err: err}
		}
		p.CreatedAt = t
	}
	return p, nil
}

func toPosts(op string, in []wirePost) ([]models.Post, error) {
	posts := make([]models.Post, 0, len(in))
	for _, w := range in {
		p, err := w.toPost(op)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// GetPost fetches a single post
func (c *Client) GetPost(ctx context.Context, id string) (*models.Post, error) {
	const op = "get post"
	if strings.TrimSpace(id) == "" {
		return nil, validationError(op, "post id is required")
	}
	var resp struct {
		Blog *wirePost `json:"blog"`
	}
	err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/api/v1/blog/" + escapeID(id), auth: true}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Blog == nil {
		return nil, partialDataError(op, "response missing blog")
	}
	post, err := resp.Blog.toPost(op)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts fetches one page of posts
func (c *Client) ListPosts(ctx context.Context, q models.PageQuery) (models.Page[models.Post], error) {
	const op = "list posts"
	if q.Page < 1 || q.Limit < 1 {
		return models.Page[models.Post]{}, validationError(op, "page and limit must be positive")
	}
	var resp struct {
		Blogs      *[]wirePost        `json:"blogs"`
		Pagination *models.Pagination `json:"pagination"`
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("limit", strconv.Itoa(q.Limit))
	err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/api/v1/blog/bulk", query: query, auth: true}, &resp)
	if err != nil {
		return models.Page[models.Post]{}, err
	}
	if resp.Blogs == nil || resp.Pagination == nil {
		return models.Page[models.Post]{}, partialDataError(op, "response missing blogs or pagination")
	}

	posts, err := toPosts(op, *resp.Blogs)
	if err != nil {
		return models.Page[models.Post]{}, err
	}
	page := models.NewPage(posts, *resp.Pagination)
	if !page.Valid() {
		return models.Page[models.Post]{}, partialDataError(op, "page holds more items than its limit")
	}
	return page, nil
}

// ListOwnPosts fetches every post written by the signed-in user
func (c *Client) ListOwnPosts(ctx context.Context) ([]models.Post, error) {
	const op = "list own posts"
	var resp struct {
		Blogs *[]wirePost `json:"blogs"`
	}
	err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/api/v1/blog/bulk1", auth: true}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Blogs == nil {
		return nil, partialDataError(op, "response missing blogs")
	}
	return toPosts(op, *resp.Blogs)
}

// CreatePost publishes a post and returns its id
func (c *Client) CreatePost(ctx context.Context, in models.CreatePostInput) (string, error) {
	const op = "create post"
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return "", validationError(op, "Please provide both title and content")
	}
	var resp struct {
		ID *string `json:"id"`
	}
	err := c.do(ctx, request{op: op, method: http.MethodPost, path: "/api/v1/blog", body: in, auth: true}, &resp)
	if err != nil {
		return "", err
	}
	if resp.ID == nil || *resp.ID == "" {
		return "", partialDataError(op, "response missing id")
	}
	return *resp.ID, nil
}

// DeletePost removes a post
func (c *Client) DeletePost(ctx context.Context, id string) error {
	const op = "delete post"
	if strings.TrimSpace(id) == "" {
		return validationError(op, "post id is required")
	}
	return c.do(ctx, request{op: op, method: http.MethodDelete, path: "/api/v1/blog/" + escapeID(id), auth: true}, nil)
}
