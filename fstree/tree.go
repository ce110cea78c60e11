package fstree

// MaxMtime is the largest modification time a node can carry.
const MaxMtime = uint32(0xFFFFFFFF)

// ClampMtime maps a unix timestamp onto the node timestamp range:
// negative values become 0, values beyond 32 bits saturate at MaxMtime.
func ClampMtime(secs int64) uint32 {
	if secs < 0 {
		return 0
	}
	if secs > int64(MaxMtime) {
		return MaxMtime
	}
	return uint32(secs)
}

// Tree holds a root directory node and the defaults applied while scanning.
// A tree is mutated by at most one scan at a time; it does no locking itself.
type Tree struct {
	Root *Node

	// DefaultMtime is stamped onto nodes whose real modification time is
	// not being preserved.
	DefaultMtime uint32
}

// NewTree creates a tree with an empty root directory (mode 0755).
func NewTree(defaultMtime uint32) *Tree {
	return &Tree{
		Root:         NewNode("", NodeMeta{Mode: ModeDir | 0o755, ModTime: defaultMtime}),
		DefaultMtime: defaultMtime,
	}
}

// Walk visits every node in depth-first preorder, children in name order.
// The path passed to fn is relative to the root ("" for the root itself).
// Walking stops at the first error, which is returned.
func (t *Tree) Walk(fn func(path string, n *Node) error) error {
	return walkNode("", t.Root, fn)
}

func walkNode(path string, n *Node, fn func(path string, n *Node) error) error {
	if err := fn(path, n); err != nil {
		return err
	}
	for _, c := range n.children {
		childPath := c.name
		if path != "" {
			childPath = path + "/" + c.name
		}
		if err := walkNode(childPath, c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Stats returns the number of nodes (excluding the root) and the total size
// of all regular files in the tree.
func (t *Tree) Stats() (nodes int64, totalFileSize int64) {
	_ = t.Walk(func(path string, n *Node) error {
		if n == t.Root {
			return nil
		}
		nodes++
		if n.Type() == ModeRegular {
			totalFileSize += n.Size
		}
		return nil
	})
	return nodes, totalFileSize
}
