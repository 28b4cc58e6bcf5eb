package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pthm/tnode"
	"github.com/pthm/tnode/lib/htmldoc"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "demo":
		if err := runDemo(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("tnode version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tnode - logical trees over a host document

Usage:
  tnode <command> [arguments]

Commands:
  demo        Build the sample signup form and contact list, edit the
              list and print the resulting HTML
  version     Print version
  help        Show this help

Options for demo:
  --verbose   Log every tree mutation to stderr
  --steps     Print the document after every list edit`)
}

func runDemo(args []string) error {
	var verbose, steps bool
	for _, arg := range args {
		switch arg {
		case "--verbose", "-v":
			verbose = true
		case "--steps":
			steps = true
		default:
			return fmt.Errorf("unknown option: %s", arg)
		}
	}

	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = l
	}
	defer logger.Sync()

	doc := htmldoc.New()
	body := doc.Body()
	body.SetID("app")

	tree := tnode.New(doc, tnode.WithLogger(logger))
	root, err := tree.Root(body)
	if err != nil {
		return err
	}

	if _, err := buildSignupForm(root); err != nil {
		return fmt.Errorf("signup form: %w", err)
	}
	contacts, err := buildContactList(root, "contacts", 1, 1, 5)
	if err != nil {
		return fmt.Errorf("contact list: %w", err)
	}

	edits := []struct {
		label string
		apply func() error
	}{
		{"insert at 0", func() error { _, err := contacts.InsertNew(0); return err }},
		{"append", func() error { _, err := contacts.AppendNew(); return err }},
		{"remove 1", func() error { return contacts.RemoveAt(1) }},
	}
	for _, edit := range edits {
		if err := edit.apply(); err != nil {
			return fmt.Errorf("%s: %w", edit.label, err)
		}
		logger.Info("list edited", zap.String("edit", edit.label), zap.Int("items", contacts.Len()))
		if steps {
			fmt.Printf("<!-- %s -->\n", edit.label)
			if err := doc.Render(os.Stdout); err != nil {
				return err
			}
			fmt.Println()
		}
	}

	if err := tnode.CheckInvariants(root); err != nil {
		return fmt.Errorf("invariants: %w", err)
	}
	if steps {
		return nil
	}
	if err := doc.Render(os.Stdout); err != nil {
		return err
	}
	fmt.Println()
	return nil
}
