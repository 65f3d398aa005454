package render

import (
	"fmt"

	"github.com/kryonlabs/mindscape/event"
)

// Draw renders n. If n is Stateful its state is pushed first and popped when Draw
// returns, including when rendering fails or panics part way through the subtree.
func Draw(r Renderer, n Node) (err error) {
	if n == nil {
		return nil
	}
	if s, ok := n.(Stateful); ok {
		pop, err := s.PushState(r)
		if err != nil {
			return err
		}
		if pop != nil {
			defer pop()
		}
	}
	return n.Render(r)
}

// DrawChildren draws the children of n in order, stopping at the first failure.
func DrawChildren(r Renderer, n Node) error {
	for i, child := range n.Children() {
		if err := Draw(r, child); err != nil {
			return fmt.Errorf("child %d: %w", i, err)
		}
	}
	return nil
}

// Tree is an embeddable list of child nodes. It handles nothing itself and
// propagates every event to all children in order.
type Tree struct {
	Nodes []Node
}

// Add appends children.
func (t *Tree) Add(nodes ...Node) {
	t.Nodes = append(t.Nodes, nodes...)
}

func (t *Tree) Children() []Node { return t.Nodes }

func (t *Tree) Handle(event.Event) {}

func (t *Tree) TriggerChildren(ev event.Event) {
	for _, child := range t.Nodes {
		if child != nil {
			event.Trigger(child, ev)
		}
	}
}

// Walk calls fn for n and every descendant, depth first, parents before children.
// Returning false from fn skips the node's subtree.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, child := range n.Children() {
		walk(child, depth+1, fn)
	}
}
