package gpx

import "github.com/planbiir/gpxgeo/internal/xmltree"

// readScalar returns the text of the first descendant named tag, or nil.
func readScalar(n xmltree.Node, tag string) *string {
	found := n.FindFirst(tag)
	if found == nil {
		return nil
	}
	return str(found.Text())
}

// readDirectChild resolves tag names that occur both directly under n and
// deeper in the subtree (e.g. <type> on a route and inside its <link>).
// With several descendant matches the last direct child named tag wins;
// otherwise the single descendant match (or nil) is returned.
func readDirectChild(n xmltree.Node, tag string) xmltree.Node {
	matches := n.FindAll(tag)
	if len(matches) <= 1 {
		if len(matches) == 0 {
			return nil
		}
		return matches[0]
	}

	var direct xmltree.Node
	for _, child := range n.Children() {
		if child.Tag() == tag {
			direct = child
		}
	}
	if direct == nil {
		return matches[0]
	}
	return direct
}

// readDirectScalar is readDirectChild followed by a text read.
func readDirectScalar(n xmltree.Node, tag string) *string {
	found := readDirectChild(n, tag)
	if found == nil {
		return nil
	}
	return str(found.Text())
}
