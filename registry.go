package tnode

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	defaultItemTag   = "div"
	defaultIndexAttr = "data-tn-index"
)

// Tree owns the element claim table for one host document.
//
// Every node built through a Tree (directly via Attach and Root, or
// indirectly via Wrap and list insertion) claims its element here. Claims
// are never released: an element that once belonged to a node can not be
// adopted by another, even after that node was removed.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	doc       Document
	log       *zap.Logger
	itemTag   string
	indexAttr string
	claims    map[Element]*Node
	factories []*List
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the logger used for mutation tracing. Mutations are
// logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tree) {
		if l != nil {
			t.log = l
		}
	}
}

// WithItemTag sets the element tag Wrap creates. Defaults to "div".
func WithItemTag(tag string) Option {
	return func(t *Tree) {
		if tag != "" {
			t.itemTag = tag
		}
	}
}

// WithIndexAttr sets the attribute that carries a list item's position
// on its element. Defaults to "data-tn-index".
func WithIndexAttr(attr string) Option {
	return func(t *Tree) {
		if attr != "" {
			t.indexAttr = attr
		}
	}
}

// New creates a tree over the given host document.
func New(doc Document, opts ...Option) *Tree {
	t := &Tree{
		doc:       doc,
		log:       zap.NewNop(),
		itemTag:   defaultItemTag,
		indexAttr: defaultIndexAttr,
		claims:    make(map[Element]*Node),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Document returns the host document the tree creates elements in.
func (t *Tree) Document() Document {
	return t.doc
}

// Owner returns the node that claimed el.
func (t *Tree) Owner(el Element) (*Node, bool) {
	n, ok := t.claims[el]
	return n, ok
}

// Root attaches a parentless node over an externally supplied element,
// named after the element's identifier.
func (t *Tree) Root(el Element) (*Node, error) {
	return t.Attach(nil, el, el.ID())
}

// Attach constructs a node over el and registers it with parent under name.
//
// The element must not have been claimed before. A nil parent creates a
// root. The element itself is not moved in the document: callers that
// build their own elements insert them where they belong.
func (t *Tree) Attach(parent *Node, el Element, name string) (*Node, error) {
	if parent != nil {
		if parent.tree != t {
			return nil, fmt.Errorf("%w: %s", ErrForeignNode, parent.Path())
		}
		if err := parent.checkNewChild(name); err != nil {
			return nil, err
		}
	}
	if owner, ok := t.claims[el]; ok {
		return nil, fmt.Errorf("%w: %q belongs to %s", ErrElementClaimed, el.ID(), owner.Path())
	}

	n := &Node{
		tree:     t,
		parent:   parent,
		el:       el,
		name:     name,
		children: make(map[string]*Node),
	}
	t.claims[el] = n
	if parent != nil {
		parent.children[name] = n
	}

	t.log.Debug("attach", zap.String("path", n.Path()), zap.String("id", el.ID()))
	return n, nil
}

// inFactory reports whether a list at or below n is running its item
// factory.
func (t *Tree) inFactory(n *Node) bool {
	for _, l := range t.factories {
		for p := l.node; p != nil; p = p.parent {
			if p == n {
				return true
			}
		}
	}
	return false
}

// claimed reports whether el has an owner, for invariant checks.
func (t *Tree) claimed(el Element, n *Node) bool {
	return t.claims[el] == n
}
