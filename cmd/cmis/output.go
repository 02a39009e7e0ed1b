package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"cmis-go/internal/cmis"
)

// terminalWidth returns the column count of f, or 0 when f is not a terminal.
func terminalWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

// truncate shortens s to width columns. A width of 0 means unlimited.
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

func typeLine(td *cmis.TypeDefinition) string {
	if td.DisplayName == "" || td.DisplayName == td.ID {
		return td.ID
	}
	return fmt.Sprintf("%s  (%s)", td.ID, td.DisplayName)
}

// printTypeTree writes the type hierarchy below roots, one type per line.
func printTypeTree(w io.Writer, roots []*cmis.TypeDefinitionContainer, width int) {
	var walk func(tc *cmis.TypeDefinitionContainer, prefix string)
	walk = func(tc *cmis.TypeDefinitionContainer, prefix string) {
		for i, child := range tc.Children {
			branch, indent := "├── ", "│   "
			if i == len(tc.Children)-1 {
				branch, indent = "└── ", "    "
			}
			fmt.Fprintln(w, truncate(prefix+branch+typeLine(child.TypeDefinition), width))
			walk(child, prefix+indent)
		}
	}
	for _, root := range roots {
		fmt.Fprintln(w, truncate(typeLine(root.TypeDefinition), width))
		walk(root, "")
	}
}

// printTypeList writes one page of types followed by a paging summary.
func printTypeList(w io.Writer, list *cmis.TypeDefinitionList, width int) {
	for _, td := range list.List {
		fmt.Fprintln(w, truncate(typeLine(td), width))
	}
	more := ""
	if list.HasMoreItems {
		more = ", more available"
	}
	fmt.Fprintf(w, "%d of %d type(s)%s\n", len(list.List), list.NumItems, more)
}

// printTypeJSON writes td in its indented JSON form.
func printTypeJSON(w io.Writer, td *cmis.TypeDefinition) error {
	data, err := cmis.MarshalTypeDefinition(td)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("formatting type %s: %w", td.ID, err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}
