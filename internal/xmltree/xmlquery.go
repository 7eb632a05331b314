package xmltree

import (
	"bytes"
	"fmt"

	"github.com/antchfx/xmlquery"
)

type queryNode struct {
	n *xmlquery.Node
}

func parseXMLQuery(data []byte) (Node, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	if firstElement(doc) == nil {
		return nil, ErrEmptyDocument
	}
	return queryNode{n: doc}, nil
}

func firstElement(n *xmlquery.Node) *xmlquery.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

func (q queryNode) Tag() string {
	if q.n.Type != xmlquery.ElementNode {
		return ""
	}
	return q.n.Data
}

func (q queryNode) FindFirst(tag string) Node {
	if found := queryFirst(q.n, tag); found != nil {
		return queryNode{n: found}
	}
	return nil
}

func queryFirst(n *xmlquery.Node, tag string) *xmlquery.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		if child.Data == tag {
			return child
		}
		if found := queryFirst(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func (q queryNode) FindAll(tag string) []Node {
	var out []Node
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != xmlquery.ElementNode {
				continue
			}
			if child.Data == tag {
				out = append(out, queryNode{n: child})
			}
			walk(child)
		}
	}
	walk(q.n)
	return out
}

func (q queryNode) Children() []Node {
	var out []Node
	for child := q.n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			out = append(out, queryNode{n: child})
		}
	}
	return out
}

func (q queryNode) Attr(name string) (string, bool) {
	for _, attr := range q.n.Attr {
		if attr.Name.Local == name && attr.Name.Space == "" {
			return attr.Value, true
		}
	}
	return "", false
}

func (q queryNode) Text() string {
	return q.n.InnerText()
}
