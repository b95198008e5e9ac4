// Package nav models a sidebar navigation tree and marks the entry of the
// page being viewed: the matching links become current, every collapsible
// section enclosing them is opened and the sidebar viewport is scrolled to
// reveal the first one.
package nav

// Toggle is the control that expands or collapses a section.
type Toggle struct {
	// Collapsed mirrors the control's "collapsed" indicator.
	Collapsed bool
}

// Node is an entry of the navigation tree. A node is a link when Href is
// set and a collapsible section when Collapsible is true. Plain grouping
// nodes (the root, list items) are neither.
type Node struct {
	// ID identifies the node within its tree (e.g. the section element id).
	ID string

	// Title is the text shown in the sidebar.
	Title string

	// Href is the link target as rendered. Empty for non-link nodes.
	Href string

	// Collapsible marks a section that can be shown or hidden.
	Collapsible bool

	// Open is the shown/hidden state of a collapsible section.
	Open bool

	// Current marks a link pointing at the page being viewed.
	Current bool

	// Toggle is the control associated with a collapsible section, if any.
	Toggle *Toggle

	// Detail is the collapsible section nested directly beneath a link entry, if any.
	Detail *Node

	Parent   *Node
	Children []*Node
}

// Link returns a link node.
func Link(title, href string) *Node {
	return &Node{Title: title, Href: href}
}

// Section returns a closed collapsible section. A nil toggle means the
// section has no control of its own.
func Section(id string, toggle *Toggle) *Node {
	return &Node{ID: id, Collapsible: true, Toggle: toggle}
}

// Group returns a plain node used to hold children.
func Group(id string) *Node {
	return &Node{ID: id}
}

// Append adds children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// IsLink reports whether n is a navigational link.
func (n *Node) IsLink() bool {
	return n != nil && n.Href != ""
}

// Ancestors returns the collapsible sections enclosing n, nearest first.
func (n *Node) Ancestors() []*Node {
	if n == nil {
		return nil
	}
	var chain []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Collapsible {
			chain = append(chain, p)
		}
	}
	return chain
}

// Visible reports whether every collapsible section enclosing n is open.
func (n *Node) Visible() bool {
	for _, s := range n.Ancestors() {
		if !s.Open {
			return false
		}
	}
	return true
}

// Viewport is the scrollable container the sidebar is rendered in.
type Viewport struct {
	// ScrollTop is the vertical scroll position in pixels.
	ScrollTop int
}

// Tree is a sidebar navigation tree.
type Tree struct {
	Root *Node

	// Viewport is nil when the sidebar has no scrollable container.
	Viewport *Viewport

	// Layout computes vertical offsets of nodes. Nil disables scrolling.
	Layout Layout
}

// NewTree returns a tree rooted at a plain group node.
func NewTree() *Tree {
	return &Tree{Root: Group("")}
}

// Walk visits the nodes of t in document order. Returning false from fn
// stops the walk.
func (t *Tree) Walk(fn func(n *Node) bool) {
	if t == nil || t.Root == nil {
		return
	}
	walk(t.Root, fn)
}

func walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// Links returns every link of t in document order.
func (t *Tree) Links() []*Node {
	var links []*Node
	t.Walk(func(n *Node) bool {
		if n.IsLink() {
			links = append(links, n)
		}
		return true
	})
	return links
}

// Find returns the first node with the given id.
func (t *Tree) Find(id string) *Node {
	var found *Node
	t.Walk(func(n *Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}
