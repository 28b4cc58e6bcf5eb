// Package tnode keeps a logical tree of named nodes in lockstep with a
// host document tree such as a browser-style DOM.
//
// The host document does the rendering. tnode owns the bookkeeping: which
// node owns which element, how nodes are named, and how ordered lists of
// sibling nodes are renumbered as items come and go, without ever letting
// the logical tree and the document drift apart.
//
// # Core Concepts
//
// A Tree records which node claimed which element. Every element is claimed
// once, for good:
//
//	doc := htmldoc.New()
//	doc.Body().SetID("app")
//	tree := tnode.New(doc)
//	root, err := tree.Root(doc.Body())
//
// Nodes are named uniquely among their siblings. Wrap creates a child over
// a fresh element, appends it to the parent's element and derives its
// identifier from the parent's:
//
//	form, _ := root.WrapTag("form", "signup")  // id "app-signup"
//	email, _ := form.WrapTag("input", "email") // id "app-signup-email"
//
// Derived identifiers are a stable contract for styling and selectors:
// they are always "<parent id>-<name>" and follow every rename.
//
// Elements built elsewhere are registered with Tree.Attach. Attach does not
// move the element and does not touch its identifier.
//
// # Lists
//
// Listify turns a node's children into a dense sequence of items named
// "0", "1", ... with inclusive bounds on their count:
//
//	list, _ := contacts.Listify(makeContact, 1, 5)
//	item, _ := list.InsertNew(0) // later items shift up by one
//	err = list.RemoveAt(2)      // later items shift down by one
//
// Renumbering renames items, rederives their identifiers (and those of
// their derived descendants) and moves a positional marker attribute; item
// elements and their content are never rebuilt. The document order of item
// elements always matches their indices.
//
// Children already named "0", "1", ... when Listify runs become the initial
// items, which lets statically built lists be adopted as they are.
//
// # Errors
//
// Every failure is a caller contract violation reported through a sentinel
// error (ErrNameTaken, ErrListFull, ...). Preconditions are checked before
// anything changes, so a rejected call leaves the tree and the document
// untouched. IsContractViolation tells them apart from factory failures.
//
// # Concurrency
//
// Operations run synchronously to completion. A Tree is not safe for
// concurrent use, and an item factory must not mutate its own list.
//
// # Testing
//
// CheckInvariants verifies claims, naming, identifiers, list density,
// bounds and document order over a subtree. Snapshot captures the logical
// shape of a subtree for comparison, and its Digest is a cheap equality
// check between states.
package tnode
