package xmltree

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

type etreeNode struct {
	el *etree.Element
}

func parseEtree(data []byte) (Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	if doc.Root() == nil {
		return nil, ErrEmptyDocument
	}
	return etreeNode{el: &doc.Element}, nil
}

func (n etreeNode) Tag() string {
	if n.el.Parent() == nil {
		return ""
	}
	return n.el.Tag
}

func (n etreeNode) FindFirst(tag string) Node {
	if found := etreeFirst(n.el, tag); found != nil {
		return etreeNode{el: found}
	}
	return nil
}

func etreeFirst(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
		if found := etreeFirst(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func (n etreeNode) FindAll(tag string) []Node {
	var out []Node
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if child.Tag == tag {
				out = append(out, etreeNode{el: child})
			}
			walk(child)
		}
	}
	walk(n.el)
	return out
}

func (n etreeNode) Children() []Node {
	children := n.el.ChildElements()
	out := make([]Node, 0, len(children))
	for _, child := range children {
		out = append(out, etreeNode{el: child})
	}
	return out
}

func (n etreeNode) Attr(name string) (string, bool) {
	attr := n.el.SelectAttr(name)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

// Text concatenates all descendant character data, CDATA included, in
// document order. Comments and processing instructions are skipped.
func (n etreeNode) Text() string {
	var sb strings.Builder
	etreeText(n.el, &sb)
	return sb.String()
}

func etreeText(el *etree.Element, sb *strings.Builder) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			etreeText(t, sb)
		}
	}
}
