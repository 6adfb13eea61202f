package htmlutil

import (
	"bytes"

	"golang.org/x/net/html"
)

// GetText concatenates every text node under node.
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

// FirstText returns the data of node's first child if that child is a text
// node. Markup like <b>12</b> nested inside the element is not looked at.
func FirstText(node *html.Node) (string, bool) {
	if node == nil || node.FirstChild == nil {
		return "", false
	}
	if node.FirstChild.Type != html.TextNode {
		return "", false
	}
	return node.FirstChild.Data, true
}
