package tnode

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/pthm/tnode/lib/encoding"
)

func TestSnapshot(t *testing.T) {
	_, root := newTestTree(t)
	list := Must(root.Wrap("list"))
	Must(list.Wrap("title"))
	l := Must(list.Listify(nil, 0, 3))
	Must(l.AppendNew())
	Must(l.AppendNew())

	want := Snapshot{
		Name:  "list",
		ID:    "app-list",
		Index: -1,
		List:  &ListShape{Min: 0, Max: 3, Len: 2},
		Children: []Snapshot{
			{Name: "0", ID: "app-list-0", Index: 0},
			{Name: "1", ID: "app-list-1", Index: 1},
			{Name: "title", ID: "app-list-title", Index: -1},
		},
	}
	if diff := cmp.Diff(want, list.Snapshot()); diff != "" {
		t.Fatalf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotEncode(t *testing.T) {
	_, root := newTestTree(t)
	l := Must(Must(root.Wrap("list")).Listify(nil, Unbounded, 4))
	Must(l.AppendNew())
	snap := root.Snapshot()

	packed, err := snap.Encode()
	require.NoError(t, err)

	decoded, err := DecodeSnapshot(packed)
	require.NoError(t, err)
	if diff := cmp.Diff(snap, decoded); diff != "" {
		t.Fatalf("decoded snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotDigestTracksChanges(t *testing.T) {
	_, root := newTestTree(t)
	l := Must(Must(root.Wrap("list")).Listify(nil, 1, 2))
	Must(l.AppendNew())

	digest := func() string {
		d, err := root.Snapshot().Digest()
		require.NoError(t, err)
		return d
	}

	start := digest()
	require.Equal(t, start, digest())

	rejected := []error{
		l.RemoveAt(0),
		func() error { _, err := l.InsertNew(5); return err }(),
		func() error { _, err := root.Wrap("list"); return err }(),
		l.SetBounds(2, 2),
	}
	for _, err := range rejected {
		require.True(t, IsContractViolation(err), "%v", err)
	}
	require.Equal(t, start, digest(), "rejected operations must not change the tree")

	Must(l.AppendNew())
	require.NotEqual(t, start, digest())
}

func TestSnapshotPacksShortKeys(t *testing.T) {
	_, root := newTestTree(t)
	Must(root.Wrap("title"))

	packed, err := root.Snapshot().Encode()
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, encoding.Unmarshal(packed, &m))
	require.Equal(t, "app", m["n"])
	require.NotContains(t, m, "l")

	children, ok := m["c"].([]any)
	require.True(t, ok, "children packed as %T", m["c"])
	require.Len(t, children, 1)
	child, ok := children[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "app-title", child["id"])
	require.NotContains(t, child, "c")
}

func TestDecodeSnapshotInvalid(t *testing.T) {
	_, err := DecodeSnapshot(nil)
	require.Error(t, err)
}
