// Package xmltree exposes a parsed XML document as a small navigable tree.
//
// The GPX parser only needs a handful of capabilities (descendant search,
// direct children, attributes and text), so they are expressed as the Node
// interface and backed by either github.com/beevik/etree or
// github.com/antchfx/xmlquery. Element names are compared on their local
// name; namespace prefixes are ignored.
package xmltree

import (
	"errors"
	"fmt"
)

// Backend selects the XML library used to build the tree.
type Backend string

const (
	Etree    Backend = "etree"
	XMLQuery Backend = "xmlquery"
)

var (
	// ErrUnknownBackend is returned by Parse for an unsupported Backend.
	ErrUnknownBackend = errors.New("unknown xml backend")
	// ErrEmptyDocument is returned when the input holds no root element.
	ErrEmptyDocument = errors.New("xml document has no root element")
)

// Node is a read-only view of an element (or of the document itself).
type Node interface {
	// Tag returns the local element name, "" for the document node.
	Tag() string
	// FindFirst returns the first descendant named tag in document order, or nil.
	FindFirst(tag string) Node
	// FindAll returns every descendant named tag in document order.
	FindAll(tag string) []Node
	// Children returns the direct child elements.
	Children() []Node
	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)
	// Text returns the character content of the node.
	Text() string
}

// Parse builds a tree from data using the given backend. The returned node is
// the document node, so the root element itself is reachable via FindFirst.
func Parse(data []byte, backend Backend) (Node, error) {
	switch backend {
	case "", Etree:
		return parseEtree(data)
	case XMLQuery:
		return parseXMLQuery(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Backends lists the supported backends.
func Backends() []Backend {
	return []Backend{Etree, XMLQuery}
}
