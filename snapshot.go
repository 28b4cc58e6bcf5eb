package tnode

import (
	"github.com/pthm/tnode/lib/encoding"
)

// Snapshot is a structural description of a logical subtree: names,
// identifiers, list positions and bounds. It holds no element content.
//
// Snapshots compare tree states cheaply, for example to confirm that a
// rejected operation left the tree as it was:
//
//	before, _ := node.Snapshot().Digest()
//	_, err := list.InsertNew(99)
//	after, _ := node.Snapshot().Digest()
type Snapshot struct {
	Name     string     `msgpack:"n"`
	ID       string     `msgpack:"id,omitempty"`
	Index    int        `msgpack:"i"`
	List     *ListShape `msgpack:"l,omitempty"`
	Children []Snapshot `msgpack:"c,omitempty"`
}

// ListShape describes a list node's bounds and size.
type ListShape struct {
	Min int `msgpack:"min"`
	Max int `msgpack:"max"`
	Len int `msgpack:"len"`
}

// Snapshot captures n and its descendants. Index is -1 for nodes that are
// not list items.
func (n *Node) Snapshot() Snapshot {
	s := Snapshot{
		Name:  n.name,
		ID:    n.ID(),
		Index: -1,
	}
	if i, ok := n.Index(); ok {
		s.Index = i
	}
	if l := n.list; l != nil {
		s.List = &ListShape{Min: l.min, Max: l.max, Len: len(l.items)}
	}
	for _, c := range n.Children() {
		s.Children = append(s.Children, c.Snapshot())
	}
	return s
}

// TNEncode describes the snapshot with the same short keys its fields are
// tagged with, leaving out empty optional fields.
func (s Snapshot) TNEncode() map[string]any {
	m := map[string]any{
		"n": s.Name,
		"i": s.Index,
	}
	if s.ID != "" {
		m["id"] = s.ID
	}
	if l := s.List; l != nil {
		m["l"] = map[string]any{"min": l.Min, "max": l.Max, "len": l.Len}
	}
	if len(s.Children) > 0 {
		children := make([]any, len(s.Children))
		for i, c := range s.Children {
			children[i] = c.TNEncode()
		}
		m["c"] = children
	}
	return m
}

// Encode packs the snapshot with msgpack.
func (s Snapshot) Encode() ([]byte, error) {
	return encoding.Marshal(s)
}

// Digest returns a short digest of the packed snapshot.
func (s Snapshot) Digest() (string, error) {
	return encoding.Digest(s)
}

// DecodeSnapshot unpacks a snapshot produced by Encode.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	err := encoding.Unmarshal(data, &s)
	return s, err
}
