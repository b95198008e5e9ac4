package nav

// Layout reports the vertical offset of a node relative to the top of the
// sidebar viewport. It returns false when the node is not rendered.
type Layout interface {
	Offset(t *Tree, n *Node) (int, bool)
}

// DefaultRowHeight is the height in pixels of one sidebar row.
const DefaultRowHeight = 28

// RowLayout assumes every visible link occupies one row of RowHeight pixels.
type RowLayout struct {
	RowHeight int
}

// Offset returns the number of visible links preceding n multiplied by the
// row height. Links hidden inside a closed section take no space.
func (l RowLayout) Offset(t *Tree, n *Node) (int, bool) {
	if l.RowHeight <= 0 || n == nil || !n.Visible() {
		return 0, false
	}

	rows, found := 0, false
	t.Walk(func(c *Node) bool {
		if c == n {
			found = true
			return false
		}
		if c.IsLink() && c.Visible() {
			rows++
		}
		return true
	})
	if !found {
		return 0, false
	}

	return rows * l.RowHeight, true
}
