package main

import (
	"github.com/pthm/tnode"
	"github.com/pthm/tnode/lib/htmldoc"
)

// field adds a labelled input to parent. The label is the managed node,
// so both its identifier and the input's follow renumbering.
func field(parent *tnode.Node, name, caption, inputType string) (*tnode.Node, error) {
	label, err := parent.WrapTag("label", name)
	if err != nil {
		return nil, err
	}
	if el, ok := label.Element().(htmldoc.Element); ok {
		el.AppendText(caption)
	}

	input, err := label.WrapTag("input", "value")
	if err != nil {
		return nil, err
	}
	input.Element().SetAttr("type", inputType)
	return input, nil
}

// contactItem populates one row of the contact list.
func contactItem(item *tnode.Node) error {
	if _, err := field(item, "name", "Name", "text"); err != nil {
		return err
	}
	_, err := field(item, "email", "E-Mail", "email")
	return err
}

// buildSignupForm wraps a static form with name and email fields.
func buildSignupForm(parent *tnode.Node) (*tnode.Node, error) {
	form, err := parent.WrapTag("form", "signup")
	if err != nil {
		return nil, err
	}
	if _, err := field(form, "name", "Name", "text"); err != nil {
		return nil, err
	}
	if _, err := field(form, "email", "E-Mail", "email"); err != nil {
		return nil, err
	}
	return form, nil
}

// buildContactList wraps a list of contact rows. It is listified without
// bounds, filled with the initial rows and bounded afterwards, so the
// bounds never have to accommodate a half-built list.
func buildContactList(parent *tnode.Node, name string, initial, min, max int) (*tnode.List, error) {
	node, err := parent.Wrap(name)
	if err != nil {
		return nil, err
	}
	list, err := node.Listify(contactItem, tnode.Unbounded, tnode.Unbounded)
	if err != nil {
		return nil, err
	}
	for i := 0; i < initial; i++ {
		if _, err := list.AppendNew(); err != nil {
			return nil, err
		}
	}
	if err := list.SetBounds(min, max); err != nil {
		return nil, err
	}
	return list, nil
}
