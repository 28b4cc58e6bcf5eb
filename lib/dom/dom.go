// Package dom declares the host document capability consumed by tnode.
//
// It is a leaf package so that host implementations (such as htmldoc) can
// satisfy the interfaces without importing the tree itself.
package dom

import "io"

// Element is a host document element.
//
// Implementations must be comparable and compare equal exactly when they
// denote the same underlying element.
type Element interface {
	ID() string
	SetID(id string)
	SetAttr(key, value string)

	// Parent returns the element's document parent, or nil when detached.
	Parent() Element

	// AppendChild moves child to the end of the receiver's children,
	// detaching it from its current parent first.
	AppendChild(child Element)

	// InsertBefore moves child directly before ref, which must be a child
	// of the receiver. A nil ref appends.
	InsertBefore(child, ref Element)

	// Detach removes the element from its document parent. No-op when
	// already detached.
	Detach()

	// Clear removes all of the element's document content.
	Clear()
}

// Document creates host elements.
type Document interface {
	CreateElement(tag string) Element
}

// Container is implemented by elements that can list their element
// children in document order.
type Container interface {
	Children() []Element
}

// Renderer is implemented by elements that can serialize themselves.
type Renderer interface {
	Render(w io.Writer) error
}
