package tnode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pthm/tnode/lib/htmldoc"
)

// newTestTree returns a tree over a fresh document whose <body id="app">
// is the root node.
func newTestTree(t *testing.T, opts ...Option) (*htmldoc.Document, *Node) {
	t.Helper()
	doc := htmldoc.New()
	body := doc.Body()
	body.SetID("app")

	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	tree := New(doc, opts...)
	root, err := tree.Root(body)
	require.NoError(t, err)
	return doc, root
}

func render(t *testing.T, n *Node) string {
	t.Helper()
	out, err := RenderString(context.Background(), n.Component())
	require.NoError(t, err)
	return out
}

func TestRoot(t *testing.T) {
	doc, root := newTestTree(t)

	require.Equal(t, "app", root.Name())
	require.Equal(t, "app", root.ID())
	require.True(t, root.IsRoot())
	require.Nil(t, root.Parent())

	owner, ok := root.Tree().Owner(doc.Body())
	require.True(t, ok)
	require.Same(t, root, owner)
}

func TestAttachClaimedElement(t *testing.T) {
	doc, root := newTestTree(t)

	el := doc.CreateElement("input")
	_, err := root.Tree().Attach(root, el, "email")
	require.NoError(t, err)

	_, err = root.Tree().Attach(root, el, "other")
	require.ErrorIs(t, err, ErrElementClaimed)
	_, ok := root.Child("other")
	require.False(t, ok)

	_, err = root.Tree().Root(doc.Body())
	require.ErrorIs(t, err, ErrElementClaimed)
}

func TestAttachDoesNotMoveElement(t *testing.T) {
	doc, root := newTestTree(t)

	el := doc.CreateElement("input")
	n, err := root.Tree().Attach(root, el, "email")
	require.NoError(t, err)

	require.Nil(t, el.Parent())
	require.Equal(t, "", n.ID(), "attached nodes keep the element's identifier")
	require.Equal(t, "app/email", n.Path())
}

func TestAttachNameTakenLeavesElementUnclaimed(t *testing.T) {
	doc, root := newTestTree(t)
	_, err := root.Wrap("email")
	require.NoError(t, err)

	el := doc.CreateElement("input")
	_, err = root.Tree().Attach(root, el, "email")
	require.ErrorIs(t, err, ErrNameTaken)

	_, claimed := root.Tree().Owner(el)
	require.False(t, claimed, "a rejected attach must not claim")
}

func TestAttachForeignParent(t *testing.T) {
	doc, root := newTestTree(t)
	other := New(doc)

	el := doc.CreateElement("input")
	_, err := other.Attach(root, el, "email")
	require.ErrorIs(t, err, ErrForeignNode)
	require.True(t, IsContractViolation(err))

	_, claimed := other.Owner(el)
	require.False(t, claimed)
	_, ok := root.Child("email")
	require.False(t, ok)
}

func TestWrap(t *testing.T) {
	_, root := newTestTree(t)

	form, err := root.WrapTag("form", "signup")
	require.NoError(t, err)
	email, err := form.WrapTag("input", "email")
	require.NoError(t, err)

	require.Equal(t, "app-signup", form.ID())
	require.Equal(t, "app-signup-email", email.ID())
	require.Same(t, form, email.Parent())

	got, ok := root.Child("signup")
	require.True(t, ok)
	require.Same(t, form, got)

	require.Equal(t,
		`<form id="app-signup"><input id="app-signup-email"/></form>`,
		render(t, form))
}

func TestWrapDefaultTag(t *testing.T) {
	_, root := newTestTree(t, WithItemTag("section"))

	n, err := root.Wrap("main")
	require.NoError(t, err)
	require.Equal(t, `<section id="app-main"></section>`, render(t, n))
}

func TestWrapNameTaken(t *testing.T) {
	_, root := newTestTree(t)
	first, err := root.Wrap("a")
	require.NoError(t, err)

	_, err = root.Wrap("a")
	require.ErrorIs(t, err, ErrNameTaken)
	require.True(t, IsContractViolation(err))

	got, _ := root.Child("a")
	require.Same(t, first, got)
	require.Equal(t, 1, root.Len())
	require.Equal(t, `<body id="app"><div id="app-a"></div></body>`, render(t, root))
}

func TestRemove(t *testing.T) {
	_, root := newTestTree(t)
	form := Must(root.Wrap("form"))
	email := Must(form.Wrap("email"))

	require.NoError(t, form.Remove())

	_, ok := root.Child("form")
	require.False(t, ok)
	require.True(t, form.Detached())
	require.True(t, email.Detached())
	require.Nil(t, form.Element().Parent())
	require.Equal(t, `<body id="app"></body>`, render(t, root))

	require.ErrorIs(t, form.Remove(), ErrDetached)
	_, err := email.Wrap("x")
	require.ErrorIs(t, err, ErrDetached)
	require.ErrorIs(t, email.SetName("y"), ErrDetached)
}

func TestRemovedElementStaysClaimed(t *testing.T) {
	_, root := newTestTree(t)
	n := Must(root.Wrap("gone"))
	el := n.Element()
	require.NoError(t, n.Remove())

	_, err := root.Tree().Attach(root, el, "again")
	require.ErrorIs(t, err, ErrElementClaimed)
}

func TestRemoveNameCanBeReused(t *testing.T) {
	_, root := newTestTree(t)
	require.NoError(t, Must(root.Wrap("slot")).Remove())

	again, err := root.Wrap("slot")
	require.NoError(t, err)
	require.Equal(t, "app-slot", again.ID())
}

func TestSetName(t *testing.T) {
	_, root := newTestTree(t)
	form := Must(root.Wrap("form"))
	email := Must(form.WrapTag("input", "email"))
	Must(root.Wrap("other"))

	require.NoError(t, form.SetName("signup"))

	require.Equal(t, "signup", form.Name())
	require.Equal(t, "app-signup", form.ID())
	require.Equal(t, "app-signup-email", email.ID(), "derived descendants follow the rename")

	_, ok := root.Child("form")
	require.False(t, ok)
	got, ok := root.Child("signup")
	require.True(t, ok)
	require.Same(t, form, got)

	require.NoError(t, CheckInvariants(root))
}

func TestSetNameCollision(t *testing.T) {
	_, root := newTestTree(t)
	a := Must(root.Wrap("a"))
	Must(root.Wrap("b"))

	err := a.SetName("b")
	require.ErrorIs(t, err, ErrNameTaken)
	require.Equal(t, "a", a.Name())
	require.Equal(t, "app-a", a.ID())

	require.NoError(t, a.SetName("a"), "renaming to the current name is a no-op")
}

func TestSetNameKeepsAttachedIdentifier(t *testing.T) {
	doc, root := newTestTree(t)
	el := doc.CreateElement("input")
	el.SetID("custom")
	n, err := root.Tree().Attach(root, el, "email")
	require.NoError(t, err)

	require.NoError(t, n.SetName("mail"))
	require.Equal(t, "custom", n.ID())
}

func TestSetNameRoot(t *testing.T) {
	_, root := newTestTree(t)
	require.NoError(t, root.SetName("page"))
	require.Equal(t, "page", root.Name())
	require.Equal(t, "app", root.ID())
}

func TestAdoptIdempotent(t *testing.T) {
	_, root := newTestTree(t)
	a := Must(root.Wrap("a"))
	b := Must(root.Wrap("b"))

	require.NoError(t, root.adopt("a", a))
	require.ErrorIs(t, root.adopt("a", b), ErrNameTaken)
	require.Equal(t, 2, root.Len())
}

func TestClear(t *testing.T) {
	doc, root := newTestTree(t)
	form := Must(root.Wrap("form"))
	a := Must(form.Wrap("a"))
	Must(form.Wrap("b"))
	form.Element().(htmldoc.Element).AppendText("loose text")
	label := doc.CreateElement("label")
	form.Element().AppendChild(label)

	require.NoError(t, form.Clear())

	require.Equal(t, 0, form.Len())
	require.False(t, form.Detached())
	require.True(t, a.Detached())
	require.Equal(t, `<div id="app-form"></div>`, render(t, form))

	again, err := form.Wrap("a")
	require.NoError(t, err)
	require.Equal(t, "app-form-a", again.ID())
}

func TestChildrenOrder(t *testing.T) {
	_, root := newTestTree(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		Must(root.Wrap(name))
	}

	var names []string
	for _, c := range root.Children() {
		names = append(names, c.Name())
	}
	require.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestIsIndexName(t *testing.T) {
	tests := []struct {
		name   string
		expect bool
	}{
		{"0", true},
		{"7", true},
		{"12", true},
		{"007", false},
		{"-1", false},
		{"+1", false},
		{"1a", false},
		{"", false},
		{"~3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isIndexName(tt.name); got != tt.expect {
				t.Errorf("isIndexName(%q) = %v, want %v", tt.name, got, tt.expect)
			}
		})
	}
}
