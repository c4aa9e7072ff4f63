package templates

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"blogdeck/internal/models"
)

type layoutData struct {
	Title    string
	SignedIn bool
	CSRF     string
	Flash    string
	Error    string
	Data     any
}

func TestNewParsesEveryPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, name := range []string{"auth", "blog", "blogs", "confirm_delete", "profile", "publish"} {
		if _, ok := r.pages[name]; !ok {
			t.Errorf("page %q not parsed", name)
		}
	}
	if _, ok := r.pages["layout"]; ok {
		t.Errorf("layout registered as a page")
	}
}

func TestRenderBlog(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	post := &models.Post{
		ID:        "p1",
		Title:     "<b>Title</b>",
		Content:   "<p>Body</p>",
		CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}
	data := layoutData{
		Title:    post.Title,
		SignedIn: true,
		CSRF:     "tok",
		Flash:    "Saved",
		Data: struct {
			Post      *models.Post
			AuthorBio string
			IsAuthor  bool
		}{Post: post, AuthorBio: "bio", IsAuthor: true},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, "blog", data, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"&lt;b&gt;Title&lt;/b&gt;",
		"<p>Body</p>",
		"Mar 5, 2024",
		"Anonymous",
		"Delete Blog",
		`value="tok"`,
		"Saved",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := r.Render(&bytes.Buffer{}, "missing", nil, nil); err == nil {
		t.Fatalf("expected error for unknown page")
	}
}

func TestHelpers(t *testing.T) {
	if got := formatDate(time.Time{}); got != "" {
		t.Errorf("formatDate(zero) = %q", got)
	}
	if got := formatDate(time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)); got != "Dec 25, 2023" {
		t.Errorf("formatDate = %q", got)
	}
	tests := map[string]string{"alice": "A", "": "U", "élan": "É"}
	for in, want := range tests {
		if got := initial(in); got != want {
			t.Errorf("initial(%q) = %q, want %q", in, got, want)
		}
	}
}
