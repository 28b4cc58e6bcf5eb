package tnode

import (
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// nodeKind tags how a node is removed.
type nodeKind uint8

const (
	plainNode nodeKind = iota
	listItemNode
)

// Node is one element of the logical tree.
//
// A node owns exactly one host element for its whole lifetime and is named
// uniquely among its siblings. Nodes created by Wrap carry a derived
// document identifier, "<parent id>-<name>", which follows every rename of
// the node or of a derived ancestor.
//
//	form := tnode.Must(root.Wrap("signup"))   // id "app-signup"
//	email := tnode.Must(form.WrapTag("input", "email"))
//	email.ID()                                // "app-signup-email"
type Node struct {
	tree     *Tree
	parent   *Node
	el       Element
	name     string
	kind     nodeKind
	index    int
	derived  bool
	detached bool
	children map[string]*Node
	list     *List
}

// Name returns the node's name among its siblings.
func (n *Node) Name() string {
	return n.name
}

// ID returns the identifier of the node's element.
func (n *Node) ID() string {
	return n.el.ID()
}

// Parent returns the enclosing node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Element returns the host element the node owns.
func (n *Node) Element() Element {
	return n.el
}

// Tree returns the tree the node was built in.
func (n *Node) Tree() *Tree {
	return n.tree
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// IsListItem reports whether the node is currently managed by its parent's list.
func (n *Node) IsListItem() bool {
	return n.kind == listItemNode
}

// Index returns the node's position in its parent's list.
func (n *Node) Index() (int, bool) {
	if n.kind != listItemNode {
		return 0, false
	}
	return n.index, true
}

// List returns the node's list extension, or nil if it was never listified.
func (n *Node) List() *List {
	return n.list
}

// Detached reports whether the node was removed from the tree.
func (n *Node) Detached() bool {
	return n.detached
}

// Len returns the number of children.
func (n *Node) Len() int {
	return len(n.children)
}

// Child returns the child registered under name.
func (n *Node) Child(name string) (*Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// Children returns the node's children: list items in index order first,
// then the remaining children sorted by name.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.kind != b.kind {
			return a.kind == listItemNode
		}
		if a.kind == listItemNode {
			return a.index < b.index
		}
		return a.name < b.name
	})
	return out
}

// Path returns the slash-separated names from the root down to n.
func (n *Node) Path() string {
	if n.parent == nil {
		return n.name
	}
	return n.parent.Path() + "/" + n.name
}

// Wrap creates a child over a fresh element with the tree's item tag.
// See WrapTag.
func (n *Node) Wrap(name string) (*Node, error) {
	return n.WrapTag(n.tree.itemTag, name)
}

// WrapTag creates a fresh element with the given tag, identifies it as
// "<n's id>-<name>", registers a child node over it and appends the element
// to n's element.
func (n *Node) WrapTag(tag, name string) (*Node, error) {
	if err := n.checkNewChild(name); err != nil {
		return nil, err
	}

	el := n.tree.doc.CreateElement(tag)
	el.SetID(childID(n.ID(), name))

	child, err := n.tree.Attach(n, el, name)
	if err != nil {
		return nil, err
	}
	child.derived = true
	n.el.AppendChild(el)
	return child, nil
}

// Remove takes the node out of the tree and its element out of the
// document. List items go through their list, which renumbers the items
// after them and enforces the list's minimum.
//
// Removal is final: the element stays claimed and the node (with its
// whole subtree) rejects further mutation with ErrDetached. A node holding
// a list whose item factory is running can not be removed.
func (n *Node) Remove() error {
	if n.detached {
		return fmt.Errorf("%w: %s", ErrDetached, n.Path())
	}
	if n.kind == listItemNode {
		return n.parent.list.RemoveAt(n.index)
	}
	if n.tree.inFactory(n) {
		return fmt.Errorf("%w: %s", ErrReentrant, n.Path())
	}
	return n.removePlain()
}

// removePlain is the base removal path. List items must not reach it
// while their list still manages them.
func (n *Node) removePlain() error {
	if n.kind == listItemNode {
		return fmt.Errorf("%w: %s", ErrListItem, n.Path())
	}
	n.detach()
	return nil
}

func (n *Node) detach() {
	n.tree.log.Debug("remove", zap.String("path", n.Path()), zap.String("id", n.ID()))

	n.el.Detach()
	if n.parent != nil {
		delete(n.parent.children, n.name)
	}
	n.markDetached()
}

func (n *Node) markDetached() {
	n.detached = true
	for _, c := range n.children {
		c.markDetached()
	}
}

// SetName renames the node. Derived identifiers of the node and of its
// derived descendants are recomputed.
//
// List items are renamed only by their list. A plain child of a list node
// can not take a list-index name.
func (n *Node) SetName(name string) error {
	if n.detached {
		return fmt.Errorf("%w: %s", ErrDetached, n.Path())
	}
	if n.kind == listItemNode {
		return fmt.Errorf("%w: %s can not be renamed directly", ErrListItem, n.Path())
	}
	if name == n.name {
		return nil
	}
	if p := n.parent; p != nil && p.list != nil && isIndexName(name) {
		return fmt.Errorf("%w: %q under list %s", ErrReservedName, name, p.Path())
	}
	return n.rename(name)
}

func (n *Node) rename(name string) error {
	if p := n.parent; p != nil {
		if cur, ok := p.children[name]; ok && cur != n {
			return fmt.Errorf("%w: %q under %s", ErrNameTaken, name, p.Path())
		}
		delete(p.children, n.name)
		n.name = name
		if err := p.adopt(name, n); err != nil {
			return err
		}
	} else {
		n.name = name
	}
	n.refreshIDs()
	return nil
}

// refreshIDs rederives the identifier of n and of every derived node
// below it. Non-derived nodes keep their identifier, so their subtrees are
// unaffected.
func (n *Node) refreshIDs() {
	if !n.derived || n.parent == nil {
		return
	}
	n.el.SetID(childID(n.parent.ID(), n.name))
	for _, c := range n.children {
		c.refreshIDs()
	}
}

// Clear removes every child and empties the node's element. A list node
// loses all its items, which requires a list minimum of zero.
func (n *Node) Clear() error {
	if n.detached {
		return fmt.Errorf("%w: %s", ErrDetached, n.Path())
	}
	if n.tree.inFactory(n) {
		return fmt.Errorf("%w: %s", ErrReentrant, n.Path())
	}
	if l := n.list; l != nil {
		if l.floor() > 0 {
			return fmt.Errorf("%w: clearing %s (min %d)", ErrBelowMin, n.Path(), l.min)
		}
		for len(l.items) > 0 {
			l.removeAt(len(l.items) - 1)
		}
	}
	for _, c := range n.Children() {
		if err := c.removePlain(); err != nil {
			return err
		}
	}
	n.el.Clear()
	return nil
}

// checkNewChild validates name for a child about to be registered.
func (n *Node) checkNewChild(name string) error {
	if n.detached {
		return fmt.Errorf("%w: %s", ErrDetached, n.Path())
	}
	if n.list != nil && isIndexName(name) {
		return fmt.Errorf("%w: %q under list %s", ErrReservedName, name, n.Path())
	}
	if _, ok := n.children[name]; ok {
		return fmt.Errorf("%w: %q under %s", ErrNameTaken, name, n.Path())
	}
	return nil
}

// adopt registers child under name. Registering the same child under the
// same name again is a no-op.
func (n *Node) adopt(name string, child *Node) error {
	if cur, ok := n.children[name]; ok {
		if cur == child {
			return nil
		}
		return fmt.Errorf("%w: %q under %s", ErrNameTaken, name, n.Path())
	}
	n.children[name] = child
	return nil
}

func childID(parentID, name string) string {
	return parentID + "-" + name
}

// isIndexName reports whether name is the canonical decimal form of a
// list position.
func isIndexName(name string) bool {
	_, ok := parseIndex(name)
	return ok
}

func parseIndex(name string) (int, bool) {
	i, err := strconv.Atoi(name)
	if err != nil || i < 0 || strconv.Itoa(i) != name {
		return 0, false
	}
	return i, true
}
