package tnode

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pthm/tnode/lib/dom"
)

// CheckInvariants walks the subtree rooted at n and reports every broken
// tree invariant, joined into one error. It returns nil for a consistent
// subtree.
//
// Checked, per node:
//   - the node's element is claimed by the node
//   - the parent maps the node's name to the node
//   - derived identifiers equal "<parent id>-<name>"
//
// and per list:
//   - items are named "0" through "Len()-1" with no gaps and no stray
//     index-named children
//   - the item count lies within the bounds
//   - item elements sharing a document parent appear in index order, when
//     that parent implements dom.Container
//
// Use it in consumer tests after driving a tree through a scenario:
//
//	if err := tnode.CheckInvariants(root); err != nil {
//	    t.Fatal(err)
//	}
func CheckInvariants(n *Node) error {
	var errs []error
	check(n, &errs)
	return errors.Join(errs...)
}

func check(n *Node, errs *[]error) {
	if !n.tree.claimed(n.el, n) {
		*errs = append(*errs, fmt.Errorf("%s: element not claimed by node", n.Path()))
	}
	if p := n.parent; p != nil {
		if p.children[n.name] != n {
			*errs = append(*errs, fmt.Errorf("%s: not registered under its name", n.Path()))
		}
		if n.derived {
			if want := childID(p.ID(), n.name); n.ID() != want {
				*errs = append(*errs, fmt.Errorf("%s: id %q, want %q", n.Path(), n.ID(), want))
			}
		}
	}
	if l := n.list; l != nil {
		checkList(l, errs)
	}
	for _, c := range n.children {
		check(c, errs)
	}
}

func checkList(l *List, errs *[]error) {
	path := l.node.Path()
	if err := checkCount(len(l.items), l.min, l.max); err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", path, err))
	}
	for i, item := range l.items {
		name := strconv.Itoa(i)
		if item.name != name || item.index != i || item.kind != listItemNode {
			*errs = append(*errs, fmt.Errorf("%s: item %d named %q with index %d", path, i, item.name, item.index))
		}
		if l.node.children[name] != item {
			*errs = append(*errs, fmt.Errorf("%s: item %d not registered", path, i))
		}
	}
	for name, c := range l.node.children {
		if i, ok := parseIndex(name); ok && (i >= len(l.items) || c.kind != listItemNode) {
			*errs = append(*errs, fmt.Errorf("%s: stray index-named child %q", path, name))
		}
	}

	order, ok := ItemOrder(l)
	if !ok {
		return
	}
	for pos, i := range order {
		if pos > 0 && order[pos-1] > i {
			*errs = append(*errs, fmt.Errorf("%s: document order %v is not index order", path, order))
			return
		}
	}
}

// ItemOrder returns the indices of the list's items in document order.
// ok is false when the items do not share one document parent or that
// parent can not list its children.
func ItemOrder(l *List) ([]int, bool) {
	if len(l.items) == 0 {
		return nil, true
	}
	p := l.items[0].el.Parent()
	if p == nil {
		return nil, false
	}
	for _, item := range l.items {
		if item.el.Parent() != p {
			return nil, false
		}
	}
	c, ok := p.(dom.Container)
	if !ok {
		return nil, false
	}

	index := make(map[Element]int, len(l.items))
	for _, item := range l.items {
		index[item.el] = item.index
	}
	order := make([]int, 0, len(l.items))
	for _, el := range c.Children() {
		if i, ok := index[el]; ok {
			order = append(order, i)
		}
	}
	return order, true
}
