package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Returns the concatenated text of the node and all of its descendants,
// in document order.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// Reduces the text of a document to a single printable line, with every
// run of whitespace collapsed into one space. Each text node contributes
// as its own word, so text in adjacent elements never runs together even
// when the markup carries no whitespace between them. Scraping
// heuristics that search free text run over this form.
func FlattenText(node *html.Node) string {
	var buffer bytes.Buffer
	flattenRecursive(node, &buffer)

	cleaned := strings.Builder{}
	for _, c := range buffer.String() {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			cleaned.WriteRune(c)
		}
	}

	flat := innerWhitespace.ReplaceAllString(cleaned.String(), " ")
	return strings.TrimSpace(flat)
}

func flattenRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		buffer.WriteByte(' ')
		return
	}
	child := node.FirstChild
	for child != nil {
		flattenRecursive(child, buffer)
		child = child.NextSibling
	}
}
