package fetch

import (
	"context"

	"blogdeck/internal/client"
	"blogdeck/internal/models"
	"blogdeck/internal/sanitize"
)

// Resources is the read side of the API used by the hooks
type Resources interface {
	GetPost(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context, q models.PageQuery) (models.Page[models.Post], error)
	CurrentUser(ctx context.Context) (*models.UserProfile, error)
	Author(ctx context.Context, userID string) (*models.AuthorProfile, error)
	ListOwnPosts(ctx context.Context) ([]models.Post, error)
}

// None is the dependency of hooks that take no input
type None struct{}

// Type aliases for the resource hooks
type (
	PostHook        = Hook[string, *models.Post]
	PostPageHook    = Hook[models.PageQuery, models.Page[models.Post]]
	CurrentUserHook = Hook[None, *models.UserProfile]
	AuthorHook      = Hook[string, *models.AuthorProfile]
	OwnPostsHook    = Hook[None, []models.Post]
)

// sanitizePosts cleans post content in place. This is the only place
// fetched markup is sanitized.
func sanitizePosts(posts []models.Post) {
	for i := range posts {
		posts[i].Content = sanitize.HTML(posts[i].Content)
	}
}

// NewPostHook loads a single post by id. The fallback is nil.
func NewPostHook(r Resources) *PostHook {
	return New("post",
		func(ctx context.Context, id string) (*models.Post, error) {
			post, err := r.GetPost(ctx, id)
			if err != nil {
				return nil, err
			}
			post.Content = sanitize.HTML(post.Content)
			return post, nil
		},
		func(string, error) *models.Post { return nil },
	)
}

// NewPostPageHook loads one page of posts. The fallback is an empty page
// with zeroed counters.
func NewPostPageHook(r Resources) *PostPageHook {
	return New("posts",
		func(ctx context.Context, q models.PageQuery) (models.Page[models.Post], error) {
			page, err := r.ListPosts(ctx, q)
			if err != nil {
				return models.Page[models.Post]{}, err
			}
			sanitizePosts(page.Items)
			return page, nil
		},
		func(models.PageQuery, error) models.Page[models.Post] { return models.EmptyPage[models.Post]() },
	)
}

// NewCurrentUserHook loads the signed-in user's profile. The fallback is nil.
func NewCurrentUserHook(r Resources) *CurrentUserHook {
	return New("user details",
		func(ctx context.Context, _ None) (*models.UserProfile, error) {
			return r.CurrentUser(ctx)
		},
		func(None, error) *models.UserProfile { return nil },
	)
}

// NewAuthorHook loads the public profile of a user by id. The fallback is nil.
func NewAuthorHook(r Resources) *AuthorHook {
	return New("author details",
		func(ctx context.Context, id string) (*models.AuthorProfile, error) {
			return r.Author(ctx, id)
		},
		func(string, error) *models.AuthorProfile { return nil },
	)
}

// NewOwnPostsHook loads the signed-in user's posts. The fallback is an
// empty slice; use OwnPostsMessage for the error text.
func NewOwnPostsHook(r Resources) *OwnPostsHook {
	return New("user blogs",
		func(ctx context.Context, _ None) ([]models.Post, error) {
			posts, err := r.ListOwnPosts(ctx)
			if err != nil {
				return nil, err
			}
			sanitizePosts(posts)
			return posts, nil
		},
		func(None, error) []models.Post { return []models.Post{} },
	)
}

// OwnPostsMessage is the text shown when the own-posts fetch failed
func OwnPostsMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case client.IsKind(err, client.KindPartialData):
		return "Failed to fetch blogs"
	default:
		return "Network error, failed to fetch blogs"
	}
}
