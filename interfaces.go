package tnode

import "github.com/pthm/tnode/lib/dom"

// Element is an alias for dom.Element for convenience.
//
// The tree never inspects element content. It only creates elements, moves
// them between parents, tags them with an identifier and a positional
// marker, and empties them. Elements are keys of the claim table, so an
// implementation must compare equal exactly when it denotes the same
// underlying element.
type Element = dom.Element

// Document is an alias for dom.Document for convenience.
type Document = dom.Document

// ItemFactory populates a freshly wrapped list item.
//
// It runs synchronously inside List.InsertNew with the item already named
// at its final position, so identifiers derived inside it are final. It
// must not insert into or remove from the same list, and must not rename
// its own item. Returning an error rolls the insertion back.
//
// Example:
//
//	func makeContact(item *tnode.Node) error {
//	    if _, err := item.WrapTag("input", "name"); err != nil {
//	        return err
//	    }
//	    _, err := item.WrapTag("input", "email")
//	    return err
//	}
type ItemFactory func(item *Node) error
