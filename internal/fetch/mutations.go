package fetch

import (
	"context"
	"log"

	"blogdeck/internal/models"
)

// Mutations is the write side of the API. Each call is a single request;
// callers re-fetch or navigate on success.
type Mutations interface {
	DeletePost(ctx context.Context, id string) error
	UpdateBio(ctx context.Context, bio string) error
	CreatePost(ctx context.Context, in models.CreatePostInput) (string, error)
}

// DeletePost deletes a post and reports whether it succeeded
func DeletePost(ctx context.Context, m Mutations, id string) bool {
	if err := m.DeletePost(ctx, id); err != nil {
		log.Printf("Delete failed: %v", err)
		return false
	}
	return true
}

// UpdateBio replaces the signed-in user's bio and reports whether it succeeded
func UpdateBio(ctx context.Context, m Mutations, bio string) bool {
	if err := m.UpdateBio(ctx, bio); err != nil {
		log.Printf("Failed to update bio: %v", err)
		return false
	}
	return true
}

// CreatePost publishes a post and returns its id on success
func CreatePost(ctx context.Context, m Mutations, in models.CreatePostInput) (string, bool) {
	id, err := m.CreatePost(ctx, in)
	if err != nil {
		log.Printf("Error publishing blog post: %v", err)
		return "", false
	}
	return id, true
}
