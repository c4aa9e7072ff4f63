// Package sanitize cleans rich-text markup received from the API before it
// is stored or rendered.
//
// HTML keeps only the markup the publishing editor produces:
//
//	p br h1 h2 h3 h4 h5 h6 strong b em i u s strike
//	ol ul li a img pre code blockquote span div
//
// The class attribute is kept on every allowed element. a keeps href and
// title, img keeps src, alt and title. Link and image URLs must be relative
// or use http, https or mailto. Comments, doctypes, event handlers and every
// other element are removed; script, style, iframe, object, embed, template,
// noscript and svg are removed together with their content. Unclosed
// elements are closed at the end of the fragment and stray end tags are
// dropped, so the output is balanced.
package sanitize

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

var allowedTags = map[string]bool{
	"p": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"strong": true, "b": true, "em": true, "i": true, "u": true, "s": true, "strike": true,
	"ol": true, "ul": true, "li": true,
	"a": true, "img": true,
	"pre": true, "code": true, "blockquote": true,
	"span": true, "div": true,
}

// elements dropped together with everything inside them
var droppedWithContent = map[string]bool{
	"script": true, "style": true, "iframe": true, "object": true,
	"embed": true, "template": true, "noscript": true, "svg": true,
}

// dropped elements whose content the tokenizer reads as raw text, even
// when the start tag is written self-closing
var rawTextTags = map[string]bool{
	"script": true, "style": true, "iframe": true, "noscript": true,
}

// opensDropped reports whether a start token begins content to skip
func opensDropped(tt html.TokenType, name string) bool {
	return tt == html.StartTagToken || rawTextTags[name]
}

var voidTags = map[string]bool{"br": true, "img": true}

var allowedAttrs = map[string]map[string]bool{
	"a":   {"href": true, "title": true},
	"img": {"src": true, "alt": true, "title": true},
}

var urlAttrs = map[string]bool{"href": true, "src": true}

var allowedSchemes = map[string]bool{"": true, "http": true, "https": true, "mailto": true}

// HTML returns markup reduced to the allow-list. It is pure and idempotent:
// HTML(HTML(s)) == HTML(s).
func HTML(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))

	var b strings.Builder
	var open []string
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			for i := len(open) - 1; i >= 0; i-- {
				writeEnd(&b, open[i])
			}
			return b.String()

		case html.TextToken:
			if skip == 0 {
				b.WriteString(html.EscapeString(string(z.Text())))
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			name := tok.Data
			if droppedWithContent[name] {
				if opensDropped(tt, name) {
					skip++
				}
				continue
			}
			if skip > 0 || !allowedTags[name] {
				continue
			}
			writeStart(&b, name, tok.Attr)
			switch {
			case voidTags[name]:
			case tt == html.SelfClosingTagToken:
				writeEnd(&b, name)
			default:
				open = append(open, name)
			}

		case html.EndTagToken:
			tok := z.Token()
			name := tok.Data
			if droppedWithContent[name] {
				if skip > 0 {
					skip--
				}
				continue
			}
			if skip > 0 || !allowedTags[name] || voidTags[name] {
				continue
			}
			idx := lastIndex(open, name)
			if idx < 0 {
				continue
			}
			for i := len(open) - 1; i >= idx; i-- {
				writeEnd(&b, open[i])
			}
			open = open[:idx]
		}
	}
}

func writeStart(b *strings.Builder, name string, attrs []html.Attribute) {
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range attrs {
		if !attrAllowed(name, a) {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(a.Key))
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
}

func writeEnd(b *strings.Builder, name string) {
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

func attrAllowed(tag string, a html.Attribute) bool {
	if a.Namespace != "" {
		return false
	}
	key := strings.ToLower(a.Key)
	if key != "class" && !allowedAttrs[tag][key] {
		return false
	}
	if urlAttrs[key] {
		return safeURL(a.Val)
	}
	return true
}

func safeURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	for _, r := range raw {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return allowedSchemes[strings.ToLower(u.Scheme)]
}

func lastIndex(stack []string, name string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == name {
			return i
		}
	}
	return -1
}
