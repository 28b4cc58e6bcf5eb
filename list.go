package tnode

import (
	"fmt"
	"slices"
	"strconv"

	"go.uber.org/zap"
)

// Unbounded disables a list bound when passed as min or max.
const Unbounded = -1

// List turns a node's children into a dense, bounded, ordered sequence.
//
// Items are named "0" through "Len()-1". Inserting or removing an item
// renumbers the items after it: their names, derived identifiers and
// positional markers move, their elements and content stay. The document
// order of item elements always follows their indices.
//
// A list is created with Node.Listify and lives as long as its node.
type List struct {
	node    *Node
	factory ItemFactory
	min     int
	max     int
	items   []*Node
	nextID  uint64
	busy    bool
}

// Listify attaches a list to n.
//
// Children already named "0", "1", ... (contiguously) are adopted as the
// initial items and put into index order in the document. min and max are
// inclusive; either may be Unbounded. factory may be nil, in which case new
// items are left empty.
func (n *Node) Listify(factory ItemFactory, min, max int) (*List, error) {
	if n.detached {
		return nil, fmt.Errorf("%w: %s", ErrDetached, n.Path())
	}
	if n.list != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyList, n.Path())
	}
	if err := validBounds(min, max); err != nil {
		return nil, err
	}

	count := 0
	for {
		if _, ok := n.children[strconv.Itoa(count)]; !ok {
			break
		}
		count++
	}
	for name := range n.children {
		if i, ok := parseIndex(name); ok && i >= count {
			return nil, fmt.Errorf("%w: %q leaves a gap after %d items in %s", ErrReservedName, name, count, n.Path())
		}
	}
	if err := checkCount(count, min, max); err != nil {
		return nil, fmt.Errorf("%w: listifying %s", err, n.Path())
	}

	l := &List{
		node:    n,
		factory: factory,
		min:     min,
		max:     max,
		items:   make([]*Node, count),
	}
	for i := 0; i < count; i++ {
		item := n.children[strconv.Itoa(i)]
		item.kind = listItemNode
		l.items[i] = item
		l.relabel(item, i)
	}
	l.order()
	n.list = l

	n.tree.log.Debug("listify",
		zap.String("path", n.Path()),
		zap.Int("items", count),
		zap.Int("min", min),
		zap.Int("max", max))
	return l, nil
}

// Node returns the node the list is attached to.
func (l *List) Node() *Node {
	return l.node
}

// Len returns the current item count.
func (l *List) Len() int {
	return len(l.items)
}

// Min returns the lower bound, or Unbounded.
func (l *List) Min() int {
	return l.min
}

// Max returns the upper bound, or Unbounded.
func (l *List) Max() int {
	return l.max
}

// Item returns the item at index i.
func (l *List) Item(i int) (*Node, bool) {
	if i < 0 || i >= len(l.items) {
		return nil, false
	}
	return l.items[i], true
}

// Items returns the items in index order.
func (l *List) Items() []*Node {
	return slices.Clone(l.items)
}

// CanInsert reports whether another item fits under the maximum.
func (l *List) CanInsert() bool {
	return l.max == Unbounded || len(l.items) < l.max
}

// CanRemove reports whether an item can go without breaking the minimum.
func (l *List) CanRemove() bool {
	return len(l.items) > l.floor()
}

// SetBounds replaces the list's bounds. The current item count must
// already satisfy them.
func (l *List) SetBounds(min, max int) error {
	if err := l.checkUsable(); err != nil {
		return err
	}
	if err := validBounds(min, max); err != nil {
		return err
	}
	if err := checkCount(len(l.items), min, max); err != nil {
		return fmt.Errorf("%w: rebounding %s", err, l.node.Path())
	}
	l.min, l.max = min, max
	return nil
}

// AppendNew inserts a new item after the last one.
func (l *List) AppendNew() (*Node, error) {
	return l.InsertNew(len(l.items))
}

// InsertNew inserts a new item at index at, shifting the items at and
// after it up by one, and runs the item factory on it.
//
// It fails with ErrListFull at the maximum and ErrIndexOutOfRange unless
// 0 <= at <= Len(). If the factory fails, the insertion is undone and the
// factory's error is returned wrapped in ErrFactory.
func (l *List) InsertNew(at int) (*Node, error) {
	if err := l.checkUsable(); err != nil {
		return nil, err
	}
	if !l.CanInsert() {
		return nil, fmt.Errorf("%w: %s holds %d (max %d)", ErrListFull, l.node.Path(), len(l.items), l.max)
	}
	if at < 0 || at > len(l.items) {
		return nil, fmt.Errorf("%w: insert at %d into %s of %d", ErrIndexOutOfRange, at, l.node.Path(), len(l.items))
	}

	item, err := l.node.Wrap(l.freshName())
	if err != nil {
		return nil, err
	}

	for i := len(l.items) - 1; i >= at; i-- {
		l.relabel(l.items[i], i+1)
	}
	l.items = slices.Insert(l.items, at, item)
	item.kind = listItemNode
	l.relabel(item, at)

	if l.factory != nil {
		if err := l.runFactory(item); err != nil {
			l.removeAt(at)
			return nil, fmt.Errorf("%w: item %d of %s: %w", ErrFactory, at, l.node.Path(), err)
		}
	}

	l.splice(at)

	l.node.tree.log.Debug("insert",
		zap.String("path", l.node.Path()),
		zap.Int("index", at),
		zap.String("id", item.ID()))
	return item, nil
}

// RemoveAt removes the item at index i and shifts the items after it down
// by one. It fails with ErrBelowMin when the list is at its minimum.
func (l *List) RemoveAt(i int) error {
	if err := l.checkUsable(); err != nil {
		return err
	}
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: remove %d from %s of %d", ErrIndexOutOfRange, i, l.node.Path(), len(l.items))
	}
	if !l.CanRemove() {
		return fmt.Errorf("%w: %s holds %d (min %d)", ErrBelowMin, l.node.Path(), len(l.items), l.min)
	}
	if item := l.items[i]; l.node.tree.inFactory(item) {
		return fmt.Errorf("%w: %s", ErrReentrant, item.Path())
	}
	l.removeAt(i)
	return nil
}

// runFactory calls the item factory on item. While it runs, the list and
// every node above it refuse structural changes.
func (l *List) runFactory(item *Node) error {
	t := l.node.tree
	l.busy = true
	t.factories = append(t.factories, l)
	defer func() {
		l.busy = false
		t.factories = t.factories[:len(t.factories)-1]
	}()
	return l.factory(item)
}

// removeAt detaches item i through the base removal path and renumbers
// the items after it, lowest index first so no two items share a name.
func (l *List) removeAt(i int) {
	item := l.items[i]
	item.kind = plainNode
	item.detach()

	l.items = slices.Delete(l.items, i, i+1)
	for j := i; j < len(l.items); j++ {
		l.relabel(l.items[j], j)
	}
}

// relabel moves item to index i: name, derived identifiers and marker.
func (l *List) relabel(item *Node, i int) {
	if err := item.rename(strconv.Itoa(i)); err != nil {
		panic(fmt.Sprintf("tnode: renumbering %s: %v", l.node.Path(), err))
	}
	item.index = i
	item.el.SetAttr(l.node.tree.indexAttr, strconv.Itoa(i))
}

// splice moves item at's element next to its neighbours: directly before
// the element of item at+1, or to the end of the previous item's document
// parent when appending, so items kept in a sub-container stay there. A
// sole item stays where Wrap appended it.
func (l *List) splice(at int) {
	el := l.items[at].el
	if at+1 < len(l.items) {
		ref := l.items[at+1].el
		if p := ref.Parent(); p != nil {
			p.InsertBefore(el, ref)
		}
		return
	}
	if at == 0 {
		return
	}
	if p := l.items[at-1].el.Parent(); p != nil {
		p.AppendChild(el)
	}
}

// order puts adopted item elements into index order, keeping the last
// item in place and pulling each predecessor in front of its successor.
// Items living under different document parents are left alone.
func (l *List) order() {
	if len(l.items) < 2 {
		return
	}
	p := l.items[len(l.items)-1].el.Parent()
	if p == nil {
		return
	}
	for _, item := range l.items {
		if item.el.Parent() != p {
			return
		}
	}
	for i := len(l.items) - 2; i >= 0; i-- {
		p.InsertBefore(l.items[i].el, l.items[i+1].el)
	}
}

// freshName returns a wrapper name that no current child uses. Names come
// from a counter that never goes back, so identifiers of wrappers are
// never reused while they are being set up.
func (l *List) freshName() string {
	for {
		name := "~" + strconv.FormatUint(l.nextID, 10)
		l.nextID++
		if _, ok := l.node.children[name]; !ok {
			return name
		}
	}
}

func (l *List) checkUsable() error {
	if l.node.detached {
		return fmt.Errorf("%w: %s", ErrDetached, l.node.Path())
	}
	if l.busy {
		return fmt.Errorf("%w: %s", ErrReentrant, l.node.Path())
	}
	return nil
}

func (l *List) floor() int {
	if l.min == Unbounded {
		return 0
	}
	return l.min
}

func validBounds(min, max int) error {
	if min < Unbounded || max < Unbounded {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidBounds, min, max)
	}
	if min != Unbounded && max != Unbounded && min > max {
		return fmt.Errorf("%w: min %d above max %d", ErrInvalidBounds, min, max)
	}
	return nil
}

func checkCount(count, min, max int) error {
	if min != Unbounded && count < min {
		return fmt.Errorf("%w: %d items, min %d", ErrBelowMin, count, min)
	}
	if max != Unbounded && count > max {
		return fmt.Errorf("%w: %d items, max %d", ErrAboveMax, count, max)
	}
	return nil
}
