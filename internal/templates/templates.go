// Package templates renders the HTML pages of the front end.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/labstack/echo/v4"

	"blogdeck/internal/sanitize"
)

//go:embed html/*.html
var files embed.FS

// previewChars is the length of the text excerpt on post cards
const previewChars = 100

var funcs = template.FuncMap{
	"formatDate": formatDate,
	"preview": func(markup string) string {
		return sanitize.Preview(markup, previewChars)
	},
	"readingTime": sanitize.ReadingMinutes,
	// markup marks post content as safe HTML. Content is sanitized when it is
	// fetched, so it must only ever be applied to fetched post content.
	"markup": func(s string) template.HTML {
		return template.HTML(s)
	},
	"initial": initial,
	"atLeastOne": func(n int) int {
		if n < 1 {
			return 1
		}
		return n
	},
}

// Renderer implements echo.Renderer over the embedded page templates.
// Every page is rendered inside layout.html.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every embedded page
func New() (*Renderer, error) {
	names, err := fs.Glob(files, "html/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range names {
		base := path.Base(name)
		if base == "layout.html" {
			continue
		}
		t, err := template.New(base).Funcs(funcs).ParseFS(files, "html/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		r.pages[strings.TrimSuffix(base, ".html")] = t
	}
	return r, nil
}

// Render executes the named page
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func initial(name string) string {
	for _, r := range name {
		return string(unicode.ToUpper(r))
	}
	return "U"
}
