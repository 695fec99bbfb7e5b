package mock

import (
	"github.com/google/uuid"

	"github.com/devicelab-dev/pageobject/pkg/core"
)

// Node is one element of the in-memory tree.
// Fields may be mutated freely between gestures; every query walks the tree afresh.
type Node struct {
	ID               string
	Type             core.ElementType
	Identifier       string
	Label            string
	Value            string
	HasValue         bool
	PlaceholderValue string
	Bounds           core.Bounds
	Hittable         bool

	// Hidden removes the node and its subtree from every query.
	Hidden bool

	// OnTap runs when the node, or a descendant without its own handler, is tapped.
	OnTap func(n *Node)

	// OnSwipe runs after a swipe on the node.
	OnSwipe func(n *Node, d core.Direction)

	// Reveal makes an off-screen node hittable once its scroll container
	// has been swiped enough times in the given direction.
	Reveal *Reveal

	Children []*Node
	parent   *Node
}

// Reveal describes when a scrolled-out node comes into view.
type Reveal struct {
	Direction core.Direction
	After     int
	Bounds    core.Bounds

	seen int
}

// NewNode creates a visible, hittable node with a fresh ID.
func NewNode(kind core.ElementType, identifier string) *Node {
	return &Node{
		ID:         uuid.New().String(),
		Type:       kind,
		Identifier: identifier,
		Bounds:     core.Bounds{Width: 100, Height: 44},
		Hittable:   true,
	}
}

// Text creates a static text node whose label is text.
func Text(text string) *Node {
	n := NewNode(core.TypeStaticText, "")
	n.Label = text
	return n
}

// SetAccessibilityIdentifier implements aip.Identifiable.
func (n *Node) SetAccessibilityIdentifier(id string) {
	n.Identifier = id
}

// Add appends children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// Remove detaches child from n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// WithLabel sets the accessibility label.
func (n *Node) WithLabel(label string) *Node {
	n.Label = label
	return n
}

// WithValue sets the current value.
func (n *Node) WithValue(value string) *Node {
	n.Value = value
	n.HasValue = true
	return n
}

// WithBounds sets the frame.
func (n *Node) WithBounds(b core.Bounds) *Node {
	n.Bounds = b
	return n
}

// OffScreen makes the node exist with an empty frame until revealed by
// after swipes in direction d on an ancestor.
func (n *Node) OffScreen(d core.Direction, after int) *Node {
	n.Reveal = &Reveal{Direction: d, After: after, Bounds: n.Bounds}
	n.Bounds = core.Bounds{}
	n.Hittable = false
	return n
}

// Find returns the first visible node in n's subtree (including n) matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	if n == nil || n.Hidden {
		return nil
	}
	if pred(n) {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(pred); found != nil {
			return found
		}
	}
	return nil
}

// FindByIdentifier returns the first visible node with the given identifier.
func (n *Node) FindByIdentifier(id string) *Node {
	return n.Find(func(x *Node) bool { return x.Identifier == id })
}

// descendants returns visible descendants of kind in document order, excluding n.
func (n *Node) descendants(kind core.ElementType, out []*Node) []*Node {
	for _, c := range n.Children {
		if c.Hidden {
			continue
		}
		if kind == core.TypeAny || c.Type == kind {
			out = append(out, c)
		}
		out = c.descendants(kind, out)
	}
	return out
}

func (n *Node) tapHandler() func(*Node) {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.OnTap != nil {
			return cur.OnTap
		}
	}
	return nil
}

func (n *Node) swiped(d core.Direction) {
	var walk func(*Node)
	walk = func(x *Node) {
		for _, c := range x.Children {
			if c.Reveal != nil && c.Reveal.Direction == d && c.Bounds.Empty() {
				c.Reveal.seen++
				if c.Reveal.seen >= c.Reveal.After {
					c.Bounds = c.Reveal.Bounds
					c.Hittable = true
				}
			}
			walk(c)
		}
	}
	walk(n)
	if n.OnSwipe != nil {
		n.OnSwipe(n, d)
	}
}
