package htmx

import (
	"strings"

	"golang.org/x/net/html"
)

// AttrSwapOOB marks an element for an out-of-band swap.
const AttrSwapOOB = "hx-swap-oob"

// InjectOOB adds hx-swap-oob="strategy" to the first start tag of markup.
//
// The tokenizer only locates the tag; the markup itself is never re-serialised,
// so everything outside the inserted attribute is preserved byte for byte.
// Markup without a start tag, or whose first tag already carries the
// attribute, is returned unchanged. An empty strategy means innerHTML.
func InjectOOB(markup string, strategy SwapStrategy) string {
	if strategy == "" {
		strategy = SwapInnerHTML
	}

	start, end, tt, ok := firstStartTag(markup)
	if !ok {
		return markup
	}

	// Insert before "/>" on self-closing tags, otherwise before ">".
	// A trailing slash on a plain start tag belongs to an unquoted value.
	at := end - 1
	if tt == html.SelfClosingTagToken && at > start && markup[at-1] == '/' {
		at--
	}
	for at > start && isSpace(markup[at-1]) {
		at--
	}

	var b strings.Builder
	b.Grow(len(markup) + len(AttrSwapOOB) + len(strategy) + 4)
	b.WriteString(markup[:at])
	b.WriteString(` ` + AttrSwapOOB + `="`)
	b.WriteString(html.EscapeString(string(strategy)))
	b.WriteString(`"`)
	b.WriteString(markup[at:])
	return b.String()
}

// firstStartTag returns the byte range of the first start tag in markup.
// It reports false when there is none or when the tag is already marked.
func firstStartTag(markup string) (start, end int, tt html.TokenType, ok bool) {
	z := html.NewTokenizer(strings.NewReader(markup))
	offset := 0
	for {
		tt = z.Next()
		if tt == html.ErrorToken {
			return 0, 0, tt, false
		}

		// Raw must be measured before TagName, which lowercases the buffer in place.
		size := len(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			offset += size
			continue
		}

		if hasAttr(z, AttrSwapOOB) {
			return 0, 0, tt, false
		}
		end = offset + size
		if end > len(markup) || markup[end-1] != '>' {
			return 0, 0, tt, false
		}
		return offset, end, tt, true
	}
}

func hasAttr(z *html.Tokenizer, name string) bool {
	_, more := z.TagName()
	for more {
		var key []byte
		key, _, more = z.TagAttr()
		if string(key) == name {
			return true
		}
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
