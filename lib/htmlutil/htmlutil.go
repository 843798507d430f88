package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under node, like Selection.Text
// but for a single node.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer, false)
	return buffer.String()
}

// GetStrippedText concatenates the text nodes under node after trimming
// each of them, dropping the ones that end up empty.
func GetStrippedText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer, true)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer, strip bool) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		if strip {
			buffer.WriteString(strings.TrimSpace(node.Data))
			return
		}
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer, strip)
		child = child.NextSibling
	}
}

// StrippedText is GetStrippedText over every node in the selection.
func StrippedText(sel *goquery.Selection) string {
	var builder strings.Builder
	for _, n := range sel.Nodes {
		builder.WriteString(GetStrippedText(n))
	}
	return builder.String()
}

// CollapseWhitespace replaces every run of unicode whitespace (including
// non-breaking spaces) with a single space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// BeforeCitation returns the trimmed text preceding the first "[", which
// is where footnote markers like "[1]" start.
func BeforeCitation(s string) string {
	before, _, _ := strings.Cut(s, "[")
	return strings.TrimSpace(before)
}
