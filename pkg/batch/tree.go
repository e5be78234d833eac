package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/cperrin88/fsops/pkg/boundary"
	"github.com/cperrin88/fsops/pkg/errors"
)

// Tree is a folder layout read from an indented listing such as the output of
// the tree command:
//
//	project/
//	├── cmd/
//	│   └── main.go
//	├── Makefile
//	└── README.md
//
// Plain indentation, ASCII connectors ("|-- ", "`-- ") and list bullets work
// too. Entries are relative to the listing and ordered so that every folder
// comes before its contents.
type Tree struct {
	Entries []TreeEntry
}

// TreeEntry is one folder or file of a Tree.
type TreeEntry struct {
	Path string
	Dir  bool
}

// treePrefix holds the runes that may precede a name on a listing line. tree
// pads its connectors with no-break spaces.
const treePrefix = " \u00a0│├└─┬|`+-*"

var treeSummary = regexp.MustCompile(`^\d+ director(y|ies)(, \d+ files?)?$`)

// plainFiles are leaf names treated as files although they have no extension.
var plainFiles = map[string]bool{
	"Makefile":    true,
	"Dockerfile":  true,
	"Jenkinsfile": true,
	"Vagrantfile": true,
	"Gemfile":     true,
	"Rakefile":    true,
	"Procfile":    true,
	"LICENSE":     true,
	"README":      true,
	"CODEOWNERS":  true,
}

// ParseTree reads a listing. Nesting follows the column at which each name
// starts. A name is a folder when it ends in "/", when entries are nested
// under it, or when it does not look like a file name. Text after " #" is a
// comment, and a leading "." line or a trailing "N directories, M files" line
// as printed by tree are ignored.
func ParseTree(data []byte) (*Tree, error) {
	type frame struct {
		col   int
		path  string
		index int // -1 for a "." root line
	}

	var (
		tree     Tree
		stack    []frame
		explicit []bool
		parents  []bool
		seen     = make(map[string]int)
	)

	for n, line := range strings.Split(string(data), "\n") {
		lineNo := n + 1
		col, name := splitTreeLine(strings.TrimRight(line, "\r"))
		if name == "" || strings.HasPrefix(name, "#") || treeSummary.MatchString(name) {
			continue
		}
		if i := strings.Index(name, " #"); i >= 0 {
			name = strings.TrimSpace(name[:i])
		}
		dir := strings.HasSuffix(name, "/")
		name = strings.TrimRight(name, "/")

		for len(stack) > 0 && stack[len(stack)-1].col >= col {
			stack = stack[:len(stack)-1]
		}

		if name == "." && len(tree.Entries) == 0 && len(stack) == 0 {
			stack = append(stack, frame{col: col, index: -1})
			continue
		}
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("%w: line %d: %q is not a valid name", errors.ErrInvalidTree, lineNo, name)
		}

		path := name
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			path = filepath.Join(parent.path, name)
			if parent.index >= 0 {
				parents[parent.index] = true
			}
		}
		if first, ok := seen[path]; ok {
			return nil, fmt.Errorf("%w: line %d: %s is already listed on line %d", errors.ErrInvalidTree, lineNo, path, first)
		}
		seen[path] = lineNo

		stack = append(stack, frame{col: col, path: path, index: len(tree.Entries)})
		tree.Entries = append(tree.Entries, TreeEntry{Path: path})
		explicit = append(explicit, dir)
		parents = append(parents, false)
	}

	if len(tree.Entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", errors.ErrInvalidTree)
	}
	for i := range tree.Entries {
		tree.Entries[i].Dir = explicit[i] || parents[i] || !looksLikeFile(filepath.Base(tree.Entries[i].Path))
	}
	return &tree, nil
}

// ReadTree reads and parses a listing from r, decompressing it first when it
// is compressed. name is only used in error messages and format detection.
func ReadTree(ctx context.Context, name string, r io.Reader) (*Tree, error) {
	data, err := readSource(ctx, name, r, errors.ErrInvalidTree)
	if err != nil {
		return nil, err
	}
	return ParseTree(data)
}

// LoadTree reads and parses the listing stored at path.
func LoadTree(ctx context.Context, path string) (*Tree, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.Classify(err), "failed to open tree listing %s", path)
	}
	defer func() { _ = file.Close() }()

	return ReadTree(ctx, filepath.Base(path), file)
}

// Count returns the number of folders and files in the tree.
func (t *Tree) Count() (folders, files int) {
	for _, e := range t.Entries {
		if e.Dir {
			folders++
		} else {
			files++
		}
	}
	return folders, files
}

// Manifest returns the steps that create the tree under root: root itself
// first, then every entry in listing order. Files that already exist are
// truncated, as create-file does.
func (t *Tree) Manifest(root string) *Manifest {
	steps := make([]Step, 0, len(t.Entries)+1)
	steps = append(steps, Step{Op: boundary.OpCreateFolder.String(), Path: root})
	for _, e := range t.Entries {
		op := boundary.OpCreateFile
		if e.Dir {
			op = boundary.OpCreateFolder
		}
		steps = append(steps, Step{Op: op.String(), Path: filepath.Join(root, e.Path)})
	}
	return &Manifest{Steps: steps}
}

// splitTreeLine returns the column at which the name on line starts and the
// rest of the line. Tabs count as four columns.
func splitTreeLine(line string) (col int, rest string) {
	for i, r := range line {
		switch {
		case r == '\t':
			col += 4
		case strings.ContainsRune(treePrefix, r):
			col++
		default:
			return col, strings.TrimSpace(line[i:])
		}
	}
	return col, ""
}

// looksLikeFile reports whether a leaf name reads as a file: it has a short
// alphanumeric extension, starts with a dot or is a well-known extensionless
// file such as Makefile.
func looksLikeFile(name string) bool {
	if plainFiles[name] || strings.HasPrefix(name, ".") {
		return true
	}
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return false
	}
	ext := name[i+1:]
	if len(ext) > 10 || (len(ext) == 1 && !strings.ContainsAny(ext, "chrmCHRM")) {
		return false
	}
	for _, r := range ext {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
