package fstree

import (
	"fmt"
	"sort"
)

// File type bits within Mode, matching the unix S_IFMT encoding so that a
// node's type survives serialization into archive formats unchanged.
const (
	ModeTypeMask uint32 = 0o170000
	ModeSocket   uint32 = 0o140000
	ModeSymlink  uint32 = 0o120000
	ModeRegular  uint32 = 0o100000
	ModeBlockDev uint32 = 0o060000
	ModeDir      uint32 = 0o040000
	ModeCharDev  uint32 = 0o020000
	ModeFifo     uint32 = 0o010000
)

// NodeMeta is the metadata descriptor from which a Node is constructed.
// ModTime must already be clamped (see ClampMtime) or defaulted by the caller.
type NodeMeta struct {
	Mode    uint32
	UID     uint32
	GID     uint32
	ModTime uint32
	Size    int64
	Target  string // symlink target text, empty otherwise
	Rdev    uint64 // device number for block/char special files
}

// Node is one filesystem object in the tree. Directory nodes own a name-sorted
// list of children; all other node types have none. A node's name is fixed at
// construction and unique among its siblings.
type Node struct {
	name     string
	Mode     uint32
	UID      uint32
	GID      uint32
	ModTime  uint32
	Size     int64
	Target   string
	Rdev     uint64
	Parent   *Node
	children []*Node
}

// NewNode creates a detached node from a name and metadata descriptor.
func NewNode(name string, meta NodeMeta) *Node {
	return &Node{
		name:    name,
		Mode:    meta.Mode,
		UID:     meta.UID,
		GID:     meta.GID,
		ModTime: meta.ModTime,
		Size:    meta.Size,
		Target:  meta.Target,
		Rdev:    meta.Rdev,
	}
}

// Name returns the node's name.
func (n *Node) Name() string {
	return n.name
}

// Type returns the file type bits of Mode.
func (n *Node) Type() uint32 {
	return n.Mode & ModeTypeMask
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.Type() == ModeDir
}

// IsSymlink reports whether the node is a symbolic link.
func (n *Node) IsSymlink() bool {
	return n.Type() == ModeSymlink
}

// Children returns the node's children in ascending name order.
// The returned slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// childIndex returns the position of name in the sorted child list, which is
// the insertion point if no child with that name exists.
func (n *Node) childIndex(name string) int {
	return sort.Search(len(n.children), func(i int) bool {
		return n.children[i].name >= name
	})
}

// Child looks up a direct child by exact name using binary search.
// It returns nil if no such child exists.
func (n *Node) Child(name string) *Node {
	i := n.childIndex(name)
	if i < len(n.children) && n.children[i].name == name {
		return n.children[i]
	}
	return nil
}

// InsertChild links c under n, keeping the child list sorted by name.
// It fails if n is not a directory or a child with the same name exists.
func (n *Node) InsertChild(c *Node) error {
	if !n.IsDir() {
		return fmt.Errorf("cannot insert %q: %q is not a directory", c.name, n.name)
	}
	i := n.childIndex(c.name)
	if i < len(n.children) && n.children[i].name == c.name {
		return fmt.Errorf("duplicate entry %q under %q", c.name, n.name)
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	c.Parent = n
	return nil
}

// RemoveChild unlinks c from n's child list, preserving sibling order.
// It reports whether c was actually a child of n.
func (n *Node) RemoveChild(c *Node) bool {
	i := n.childIndex(c.name)
	if i >= len(n.children) || n.children[i] != c {
		return false
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	c.Parent = nil
	return true
}
