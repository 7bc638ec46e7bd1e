package populate

import (
	"strings"

	"github.com/rediwo/mongo-join/utils"
)

type node struct {
	field    Field
	parent   int // -1 for roots
	children []int
}

// Forest is a set of population trees stored in one arena and addressed by
// index. A Forest is never modified once returned: Merge builds a new one.
// Sibling nodes are never Same.
type Forest struct {
	nodes []node
	roots []int
}

// NewForest returns an empty forest
func NewForest() *Forest {
	return &Forest{}
}

// Chain turns a resolved path into a single-branch forest whose last field
// is the leaf.
func Chain(fields []Field) *Forest {
	f := NewForest()
	parent := -1
	for _, field := range fields {
		parent = f.add(parent, field)
	}
	return f
}

// Merge returns a new forest holding the trees of f and other. A tree of
// other whose root is Same as a root of f has its children merged into that
// root recursively; anything unmatched is appended.
func (f *Forest) Merge(other *Forest) *Forest {
	merged := f.clone()
	for _, id := range other.roots {
		merged.mergeNode(-1, other, id)
	}
	return merged
}

func (f *Forest) mergeNode(parent int, src *Forest, srcID int) {
	field := src.nodes[srcID].field
	id := f.find(parent, field)
	if id < 0 {
		id = f.add(parent, field)
	}
	for _, child := range src.nodes[srcID].children {
		f.mergeNode(id, src, child)
	}
}

func (f *Forest) clone() *Forest {
	c := &Forest{
		nodes: make([]node, len(f.nodes)),
		roots: append([]int(nil), f.roots...),
	}
	for i, n := range f.nodes {
		n.children = append([]int(nil), n.children...)
		c.nodes[i] = n
	}
	return c
}

func (f *Forest) siblings(parent int) []int {
	if parent < 0 {
		return f.roots
	}
	return f.nodes[parent].children
}

func (f *Forest) find(parent int, field Field) int {
	for _, id := range f.siblings(parent) {
		if f.nodes[id].field.Same(field) {
			return id
		}
	}
	return -1
}

func (f *Forest) add(parent int, field Field) int {
	id := len(f.nodes)
	f.nodes = append(f.nodes, node{field: field, parent: parent})
	if parent < 0 {
		f.roots = append(f.roots, id)
	} else {
		f.nodes[parent].children = append(f.nodes[parent].children, id)
	}
	return id
}

// Trees returns one view per root, in insertion order
func (f *Forest) Trees() []Tree {
	trees := make([]Tree, len(f.roots))
	for i, id := range f.roots {
		trees[i] = Tree{forest: f, root: id}
	}
	return trees
}

// Len returns the number of trees
func (f *Forest) Len() int {
	return len(f.roots)
}

// Size returns the number of nodes across all trees
func (f *Forest) Size() int {
	return len(f.nodes)
}

func (f *Forest) String() string {
	parts := make([]string, 0, len(f.roots))
	for _, t := range f.Trees() {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, "\n")
}

// Tree is a read-only view of one tree of a Forest
type Tree struct {
	forest *Forest
	root   int
}

// Visit describes a node reached by Walk
type Visit struct {
	ID    int
	Field Field
	Depth int    // 0 for the root
	Path  string // dotted path from the root to this node
}

// Root returns the field at the root of the tree
func (t Tree) Root() Field {
	return t.forest.nodes[t.root].field
}

// RootID returns the arena index of the root
func (t Tree) RootID() int {
	return t.root
}

// Field returns the field stored at id
func (t Tree) Field(id int) Field {
	return t.forest.nodes[id].field
}

// Children returns the arena indexes of the children of id
func (t Tree) Children(id int) []int {
	return append([]int(nil), t.forest.nodes[id].children...)
}

// Path returns the dotted path from the root down to id
func (t Tree) Path(id int) string {
	var segments []string
	for id >= 0 {
		segments = append(segments, t.forest.nodes[id].field.Name)
		if id == t.root {
			break
		}
		id = t.forest.nodes[id].parent
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return utils.JoinPath(segments...)
}

// Walk visits the tree depth-first, parents before children, siblings in
// insertion order. It stops at the first error fn returns.
func (t Tree) Walk(fn func(Visit) error) error {
	return t.walk(t.root, 0, t.Root().Name, fn)
}

func (t Tree) walk(id, depth int, path string, fn func(Visit) error) error {
	n := t.forest.nodes[id]
	if err := fn(Visit{ID: id, Field: n.field, Depth: depth, Path: path}); err != nil {
		return err
	}
	for _, child := range n.children {
		childPath := utils.JoinPath(path, t.forest.nodes[child].field.Name)
		if err := t.walk(child, depth+1, childPath, fn); err != nil {
			return err
		}
	}
	return nil
}

// String renders the tree with one node per line:
//
//	members [] -> players
//	└── studiedAt -> schools
func (t Tree) String() string {
	return t.render(t.root)
}

func (t Tree) render(id int) string {
	n := t.forest.nodes[id]
	lines := []string{describe(n.field)}

	for i, child := range n.children {
		last := i == len(n.children)-1
		for j, line := range strings.Split(t.render(child), "\n") {
			switch {
			case j == 0 && last:
				line = "└── " + line
			case j == 0:
				line = "├── " + line
			case last:
				line = "    " + line
			default:
				line = "│   " + line
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func describe(f Field) string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	if f.IsArray {
		sb.WriteString(" []")
	}
	if f.IsJoin() {
		sb.WriteString(" -> ")
		sb.WriteString(f.Collection)
	}
	return sb.String()
}
