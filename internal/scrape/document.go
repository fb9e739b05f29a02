package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
)

// Document is a parsed HTML page that can be queried by tag and class.
type Document struct {
	doc *goquery.Document
}

// Node is a single element returned from a Document query.
type Node struct {
	sel *goquery.Selection
}

// ParseDocument parses body as HTML.
func ParseDocument(body string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "parsing html document")
	}

	return &Document{doc: doc}, nil
}

// FindAll returns every element named tag whose class list contains class, in document order.
func (d *Document) FindAll(tag, class string) []Node {
	return findAll(d.doc.Selection, tag, class)
}

// FindFirst returns the first element named tag whose class list contains class.
func (d *Document) FindFirst(tag, class string) (Node, bool) {
	nodes := d.FindAll(tag, class)
	if len(nodes) == 0 {
		return Node{}, false
	}
	return nodes[0], true
}

func findAll(root *goquery.Selection, tag, class string) []Node {
	matches := root.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return class == "" || s.HasClass(class)
	})

	nodes := make([]Node, 0, matches.Length())
	matches.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, Node{sel: s})
	})

	return nodes
}

// Attr looks up an attribute on the element.
func (n Node) Attr(name string) (string, bool) {
	if n.sel == nil {
		return "", false
	}
	return n.sel.Attr(name)
}

// First returns the first descendant element named tag.
func (n Node) First(tag string) (Node, bool) {
	if n.sel == nil {
		return Node{}, false
	}

	match := n.sel.Find(tag).First()
	if match.Length() == 0 {
		return Node{}, false
	}
	return Node{sel: match}, true
}

// InnerHTML serializes the element's children. Text and comment children are
// written as their bare decoded text, element children are rendered as HTML.
func (n Node) InnerHTML() (string, error) {
	if n.sel == nil || len(n.sel.Nodes) == 0 {
		return "", nil
	}

	var builder strings.Builder
	for child := n.sel.Nodes[0].FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode, html.CommentNode:
			builder.WriteString(child.Data)
			continue
		}

		if err := html.Render(&builder, child); err != nil {
			return "", eris.Wrap(err, "rendering child node")
		}
	}

	return builder.String(), nil
}
