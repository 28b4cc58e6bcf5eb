package tnode

import "errors"

// Sentinel errors for tree operations. Every one of them reports a
// contract violation by the caller; none are transient.
var (
	ErrElementClaimed  = errors.New("tnode: element already claimed by a node")
	ErrNameTaken       = errors.New("tnode: name already taken by a sibling")
	ErrReservedName    = errors.New("tnode: name is reserved for list items")
	ErrDetached        = errors.New("tnode: node has been removed")
	ErrForeignNode     = errors.New("tnode: node belongs to another tree")
	ErrListItem        = errors.New("tnode: node is managed by a list")
	ErrAlreadyList     = errors.New("tnode: node is already a list")
	ErrInvalidBounds   = errors.New("tnode: invalid list bounds")
	ErrBelowMin        = errors.New("tnode: list would fall below its minimum")
	ErrAboveMax        = errors.New("tnode: list would exceed its maximum")
	ErrListFull        = errors.New("tnode: list is at capacity")
	ErrIndexOutOfRange = errors.New("tnode: list index out of range")
	ErrReentrant       = errors.New("tnode: list mutated from inside its item factory")
	ErrFactory         = errors.New("tnode: item factory failed")
)

var contractErrors = []error{
	ErrElementClaimed,
	ErrNameTaken,
	ErrReservedName,
	ErrDetached,
	ErrForeignNode,
	ErrListItem,
	ErrAlreadyList,
	ErrInvalidBounds,
	ErrBelowMin,
	ErrAboveMax,
	ErrListFull,
	ErrIndexOutOfRange,
	ErrReentrant,
}

// IsContractViolation reports whether err is (or wraps) one of the
// precondition errors above. Factory failures are not contract violations.
func IsContractViolation(err error) bool {
	for _, target := range contractErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsBoundsError checks if err is a list capacity or floor error.
func IsBoundsError(err error) bool {
	return errors.Is(err, ErrBelowMin) || errors.Is(err, ErrAboveMax) || errors.Is(err, ErrListFull)
}

// Must panics if err is non-nil and returns v otherwise. It is meant for
// factory code that builds fixed structures and treats any failure as a bug.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
