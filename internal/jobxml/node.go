package jobxml

import "strings"

// Node is one element of a parsed job record. Text holds the element's own
// character data concatenated in document order.
type Node struct {
	Name     string
	Text     string
	Children []*Node
}

// Predicate reports whether a parsed record should be kept.
type Predicate func(*Node) bool

// MatchAll accepts every record.
func MatchAll(*Node) bool { return true }

// All combines predicates with logical AND. With no predicates it behaves
// like MatchAll.
func All(preds ...Predicate) Predicate {
	return func(n *Node) bool {
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Child returns the first direct child named name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find walks a slash separated path of child names (e.g. "Resource_List/walltime")
// starting at n and returns the node it resolves to, or nil.
func (n *Node) Find(path string) *Node {
	cur := n
	for _, part := range strings.Split(path, "/") {
		if part == "" || part == "." {
			continue
		}
		cur = cur.Child(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// FindText returns the text of the node at path. ok is false when the path
// does not resolve or the node carries no non-blank text.
func (n *Node) FindText(path string) (string, bool) {
	found := n.Find(path)
	if found == nil || strings.TrimSpace(found.Text) == "" {
		return "", false
	}
	return found.Text, true
}

// HasChildText reports whether any direct child named name has text equal to value.
func (n *Node) HasChildText(name, value string) bool {
	if n == nil {
		return false
	}
	for _, c := range n.Children {
		if c.Name == name && c.Text == value {
			return true
		}
	}
	return false
}
