package models

import "time"

// Author identifies the writer of a post
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Post is a published blog post. Content holds rich-text markup and is
// sanitized before it leaves the fetch layer.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthorName returns the display name, falling back to "Anonymous"
func (p *Post) AuthorName() string {
	if p.Author.Name == "" {
		return "Anonymous"
	}
	return p.Author.Name
}

// CreatePostInput represents the request body for publishing a post
type CreatePostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
