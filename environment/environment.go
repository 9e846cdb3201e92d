// Package environment implements the ordered location tree (world -> area ->
// building -> room -> object) with mutable free-text state per object. The
// tree is data the simulation describes, not geometry: spatial positions
// live on the game map, while this tree names what exists where so external
// prompt builders can render surroundings.
package environment

import (
	"fmt"
	"strings"
)

// NodeType is the level of a tree node.
type NodeType string

const (
	NodeWorld    NodeType = "world"
	NodeArea     NodeType = "area"
	NodeBuilding NodeType = "building"
	NodeRoom     NodeType = "room"
	NodeObject   NodeType = "object"
)

// Node is one location-tree entry. Children keep definition order. State is
// free text and only meaningful on object nodes ("the stove is off").
type Node struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Type     NodeType `json:"type"`
	State    string   `json:"state,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := *n
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
		}
	}
	return &cp
}

// Environment wraps the tree root with lookup and rendering helpers.
type Environment struct {
	root *Node
}

// New creates an environment over the given root. A nil root yields an empty
// world node so lookups stay total.
func New(root *Node) *Environment {
	if root == nil {
		root = &Node{Name: "world", Type: NodeWorld}
	}
	return &Environment{root: root}
}

// Root returns the tree root.
func (e *Environment) Root() *Node { return e.root }

// Restore replaces the tree with a copy of the persisted snapshot, so the
// caller's value stays detached from the live tree.
func (e *Environment) Restore(root *Node) {
	if root != nil {
		e.root = root.Clone()
	}
}

// FindNode returns the first node, in depth-first definition order, whose
// name contains the query (case-insensitive). First match wins, so duplicate
// names in different buildings are ambiguous; use FindNodeByPath when the
// caller must disambiguate. Returns nil when nothing matches.
func (e *Environment) FindNode(name string) *Node {
	query := strings.ToLower(name)
	return findNode(e.root, query)
}

func findNode(n *Node, query string) *Node {
	if n == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(n.Name), query) {
		return n
	}
	for _, c := range n.Children {
		if found := findNode(c, query); found != nil {
			return found
		}
	}
	return nil
}

// FindNodeByPath resolves a fully-qualified chain of exact names from the
// root, e.g. ("town", "Hobbs Cafe", "kitchen"). The root's own name is not
// part of the path. Returns nil when any segment is missing.
func (e *Environment) FindNodeByPath(path ...string) *Node {
	current := e.root
	for _, segment := range path {
		var next *Node
		for _, c := range current.Children {
			if strings.EqualFold(c.Name, segment) {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// ObjectsIn depth-first-collects the object-typed descendants of the first
// node matching the location name. An unknown location yields an empty
// slice.
func (e *Environment) ObjectsIn(location string) []*Node {
	node := e.FindNode(location)
	if node == nil {
		return nil
	}
	var objects []*Node
	collectObjects(node, &objects)
	return objects
}

func collectObjects(n *Node, out *[]*Node) {
	if n.Type == NodeObject {
		*out = append(*out, n)
	}
	for _, c := range n.Children {
		collectObjects(c, out)
	}
}

// SetObjectState updates the free-text state of the first object matching
// the name. Returns false when no such object exists.
func (e *Environment) SetObjectState(name, state string) bool {
	node := e.FindNode(name)
	if node == nil || node.Type != NodeObject {
		return false
	}
	node.State = state
	return true
}

// Describe renders a path-plus-object-state summary of a location for
// external prompt builders, e.g.
//
//	town > Hobbs Cafe > kitchen
//	- stove: off
//	- counter: clean
//
// Unknown locations render as an empty string.
func (e *Environment) Describe(location string) string {
	target := e.FindNode(location)
	if target == nil {
		return ""
	}
	path := pathTo(e.root, target, nil)
	var b strings.Builder
	names := make([]string, len(path))
	for i, n := range path {
		names[i] = n.Name
	}
	b.WriteString(strings.Join(names, " > "))
	var objects []*Node
	collectObjects(target, &objects)
	for _, obj := range objects {
		state := obj.State
		if state == "" {
			state = "ordinary"
		}
		fmt.Fprintf(&b, "\n- %s: %s", obj.Name, state)
	}
	return b.String()
}

// pathTo returns the node chain from root to target inclusive, or nil.
func pathTo(current, target *Node, trail []*Node) []*Node {
	trail = append(trail, current)
	if current == target {
		out := make([]*Node, len(trail))
		copy(out, trail)
		return out
	}
	for _, c := range current.Children {
		if found := pathTo(c, target, trail); found != nil {
			return found
		}
	}
	return nil
}
