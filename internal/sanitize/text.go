package sanitize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// charsPerMinute is the reading speed used by ReadingMinutes
const charsPerMinute = 400

// PlainText returns the text content of markup with all tags removed.
// Text inside elements that are dropped with their content is omitted.
func PlainText(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))

	var b strings.Builder
	skip := 0
	for {
		switch tt := z.Next(); tt {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if droppedWithContent[string(name)] && opensDropped(tt, string(name)) {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if droppedWithContent[string(name)] && skip > 0 {
				skip--
			}
		}
	}
}

// Preview returns at most n characters of the plain text of markup,
// followed by "..." when it was cut.
func Preview(markup string, n int) string {
	text := PlainText(markup)
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}

// ReadingMinutes estimates how long the plain text of markup takes to read
func ReadingMinutes(markup string) int {
	n := utf8.RuneCountInString(PlainText(markup))
	return (n + charsPerMinute - 1) / charsPerMinute
}
