package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"blogdeck/internal/models"
	"blogdeck/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	c, err := New(srv.URL, store)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func signIn(t *testing.T, store *session.MemoryStore) {
	t.Helper()
	if err := store.Set("tok-123"); err != nil {
		t.Fatalf("set token: %v", err)
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8787", "ftp://example.com", "http://"} {
		if _, err := New(raw, session.NewMemoryStore()); err == nil {
			t.Errorf("New(%q) should fail", raw)
		}
	}
	if _, err := New("http://localhost:8787", nil); err == nil {
		t.Errorf("New without store should fail")
	}
}

func TestRequestHeaders(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "tok-123" {
			t.Errorf("Authorization = %q, want raw token", got)
		}
		if _, err := uuid.Parse(r.Header.Get("X-Request-ID")); err != nil {
			t.Errorf("X-Request-ID is not a uuid: %v", err)
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": "u1", "name": "alice", "bio": "hi"})
	})
	signIn(t, store)

	user, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if user.ID != "u1" || user.Name != "alice" || user.Bio != "hi" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestAuthRequiredWithoutToken(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.CurrentUser(context.Background())
	if !IsKind(err, KindAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if called {
		t.Fatalf("request sent without a token")
	}
}

func TestAuthorDoesNotNeedToken(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header")
		}
		if got := r.URL.EscapedPath(); got != "/api/v1/user/a%2Fb/details" {
			t.Errorf("path = %q", got)
		}
		writeJSON(w, http.StatusOK, map[string]any{"name": "bob", "bio": nil})
	})

	author, err := c.Author(context.Background(), "a/b")
	if err != nil {
		t.Fatalf("author: %v", err)
	}
	if author.Name != "bob" || author.Bio != "" {
		t.Fatalf("unexpected author %+v", author)
	}
}

func TestSigninStoresToken(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/user/signin" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var in models.SigninInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		if in.Email != "a@b.com" || in.Password != "secret" {
			t.Errorf("unexpected body %+v", in)
		}
		writeJSON(w, http.StatusOK, map[string]string{"jwt": "new-token"})
	})

	if err := c.Signin(context.Background(), models.SigninInput{Email: "a@b.com", Password: "secret"}); err != nil {
		t.Fatalf("signin: %v", err)
	}
	if token, ok := store.Get(); !ok || token != "new-token" {
		t.Fatalf("token = %q, %v", token, ok)
	}
	if !c.SignedIn() {
		t.Fatalf("client should report signed in")
	}

	if err := c.Signout(); err != nil {
		t.Fatalf("signout: %v", err)
	}
	if c.SignedIn() {
		t.Fatalf("client still signed in after signout")
	}
}

func TestSigninWithoutTokenIsAuthError(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "welcome"})
	})

	err := c.Signin(context.Background(), models.SigninInput{Email: "a@b.com", Password: "secret"})
	if !IsKind(err, KindAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Fatalf("a token was stored")
	}
}

func TestSignupValidation(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	err := c.Signup(context.Background(), models.SignupInput{Name: " ", Email: "a@b.com", Password: "x"})
	if !IsKind(err, KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	err = c.Signin(context.Background(), models.SigninInput{Email: "a@b.com"})
	if !IsKind(err, KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if called {
		t.Fatalf("request sent for invalid input")
	}
}

func TestServerErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error field", http.StatusBadRequest, `{"error":"Invalid inputs"}`, "Invalid inputs"},
		{"message wins", http.StatusConflict, `{"kind":"conflict","message":"Email taken","error":"x"}`, "Email taken"},
		{"no body", http.StatusInternalServerError, ``, "Internal Server Error"},
		{"not json", http.StatusBadGateway, `<html>oops</html>`, "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			err := c.Signup(context.Background(), models.SignupInput{Name: "n", Email: "e", Password: "p"})
			if !IsKind(err, KindServer) {
				t.Fatalf("expected server error, got %v", err)
			}
			if got := Message(err); got != tt.want {
				t.Fatalf("Message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnauthorizedClearsSession(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	})
	signIn(t, store)

	_, err := c.GetPost(context.Background(), "abc")
	if !IsKind(err, KindAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Fatalf("rejected token was not cleared")
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	store := session.NewMemoryStore()
	signIn(t, store)
	c, err := New(url, store)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	_, err = c.GetPost(context.Background(), "abc")
	if !IsKind(err, KindNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if _, ok := store.Get(); !ok {
		t.Fatalf("network failure must not clear the session")
	}
}

func TestListPosts(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/blog/bulk" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("limit") != "2" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"blogs": []map[string]any{
				{"id": "p1", "title": "One", "content": "<p>1</p>", "author": map[string]string{"id": "u1", "name": "alice"}, "createdAt": "2024-03-01T10:00:00.000Z"},
				{"id": "p2", "title": "Two", "content": "<p>2</p>", "author": map[string]string{"id": "u2", "name": "bob"}, "createdAt": "2024-03-02T10:00:00Z"},
			},
			// hasNext is inconsistent on purpose; it is derived from the counters
			"pagination": map[string]any{"total": 5, "page": 2, "limit": 2, "totalPages": 3, "hasNext": false},
		})
	})
	signIn(t, store)

	page, err := c.ListPosts(context.Background(), models.PageQuery{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(page.Items) != 2 || page.Page != 2 || page.TotalPages != 3 || page.Total != 5 {
		t.Fatalf("unexpected page %+v", page)
	}
	if !page.HasNext {
		t.Fatalf("HasNext must equal Page < TotalPages")
	}
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !page.Items[0].CreatedAt.Equal(want) {
		t.Fatalf("CreatedAt = %v, want %v", page.Items[0].CreatedAt, want)
	}
	if page.Items[1].Author.Name != "bob" {
		t.Fatalf("author not decoded: %+v", page.Items[1].Author)
	}
}

func TestListPostsPartialData(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing blogs", `{"pagination":{"total":0,"page":1,"limit":10,"totalPages":0}}`},
		{"missing pagination", `{"blogs":[]}`},
		{"over limit", `{"blogs":[{"id":"a"},{"id":"b"}],"pagination":{"total":2,"page":1,"limit":1,"totalPages":2}}`},
		{"bad date", `{"blogs":[{"id":"a","createdAt":"yesterday"}],"pagination":{"total":1,"page":1,"limit":10,"totalPages":1}}`},
		{"malformed", `{"blogs":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			})
			signIn(t, store)
			_, err := c.ListPosts(context.Background(), models.PageQuery{Page: 1, Limit: 10})
			if !IsKind(err, KindPartialData) {
				t.Fatalf("expected partial data error, got %v", err)
			}
		})
	}
}

func TestListPostsValidation(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected")
	})
	signIn(t, store)
	_, err := c.ListPosts(context.Background(), models.PageQuery{Page: 0, Limit: 10})
	if !IsKind(err, KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetPostMissingBlog(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	signIn(t, store)
	if _, err := c.GetPost(context.Background(), "abc"); !IsKind(err, KindPartialData) {
		t.Fatalf("expected partial data error, got %v", err)
	}
}

func TestListOwnPostsMissingBlogs(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/blog/bulk1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]any{"posts": []any{}})
	})
	signIn(t, store)
	if _, err := c.ListOwnPosts(context.Background()); !IsKind(err, KindPartialData) {
		t.Fatalf("expected partial data error, got %v", err)
	}
}

func TestCreatePost(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/blog" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			t.Errorf("Content-Type = %q", ct)
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": "new-id"})
	})
	signIn(t, store)

	if _, err := c.CreatePost(context.Background(), models.CreatePostInput{Title: "  ", Content: "<p>x</p>"}); !IsKind(err, KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	id, err := c.CreatePost(context.Background(), models.CreatePostInput{Title: "T", Content: "<p>x</p>"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != "new-id" {
		t.Fatalf("id = %q", id)
	}
}

func TestDeletePostAndUpdateBio(t *testing.T) {
	var seen []string
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPut {
			var in models.UpdateBioInput
			json.NewDecoder(r.Body).Decode(&in)
			if in.Bio != "new bio" {
				t.Errorf("bio = %q", in.Bio)
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	signIn(t, store)

	if err := c.DeletePost(context.Background(), "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := c.UpdateBio(context.Background(), "new bio"); err != nil {
		t.Fatalf("update bio: %v", err)
	}
	want := []string{"DELETE /api/v1/blog/p1", "PUT /api/v1/user/bio"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Fatalf("requests = %v, want %v", seen, want)
	}
}
