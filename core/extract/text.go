package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// blockText returns the text content of n with block boundaries turned
// into spaces, all whitespace (including non-breaking spaces) collapsed,
// and the result trimmed.
func blockText(n *html.Node) string {
	var buf strings.Builder
	writeText(n, &buf)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func writeText(n *html.Node, buf *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		buf.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript":
			return
		}
	}

	block := n.Type == html.ElementNode && isBlock(n.Data)
	if block {
		buf.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(c, buf)
	}
	if block {
		buf.WriteByte(' ')
	}
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "ul", "ol", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}
