package tnode

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/tnode/lib/dom"
)

// Component returns a templ component that writes the node's element.
//
// The element must implement dom.Renderer (htmldoc elements do). Use it to
// embed a managed subtree in a templ layout:
//
//	@form.Component()
func (n *Node) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		r, ok := n.el.(dom.Renderer)
		if !ok {
			return fmt.Errorf("tnode: element %T of %s can not render", n.el, n.Path())
		}
		return r.Render(w)
	})
}

// RenderString renders a templ component to a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
