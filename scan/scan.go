// Package scan builds fstree nodes from a live directory hierarchy.
//
// Two walkers implement the same contract: a file-descriptor-relative walker
// used on unix-like systems, and a portable walker driven by a directory
// iterator Source, used where fd-relative primitives are unavailable and for
// non-local hierarchies such as SFTP mounts. For the flag subset both
// support, they produce identical trees.
package scan

import (
	"errors"
	"fmt"

	"github.com/v-anand/treesnap/fstree"
)

// Flags select which entries a scan includes and how it traverses.
type Flags uint32

const (
	// NoDirs excludes directories from the tree. Entries below an already
	// present directory node are still scanned into it (overlay scan).
	NoDirs Flags = 1 << iota
	// NoFiles excludes regular files.
	NoFiles
	// NoSymlinks excludes symbolic links.
	NoSymlinks
	// NoSockets excludes sockets.
	NoSockets
	// NoFifos excludes named pipes.
	NoFifos
	// NoBlockDevs excludes block device nodes.
	NoBlockDevs
	// NoCharDevs excludes character device nodes.
	NoCharDevs
	// NoRecursion scans only the top directory itself.
	NoRecursion
	// OneFilesystem skips entries on a device other than the one the
	// scan started on, so traversal never crosses a mount point.
	OneFilesystem
	// KeepTime stores each entry's real modification time instead of the
	// tree's default.
	KeepTime
)

// Verdict is a callback's decision for a newly constructed node.
type Verdict int

const (
	// Accept keeps the node; directories are then recursed into.
	Accept Verdict = iota
	// Discard drops this node only; the scan continues with its siblings.
	Discard
)

// Callback is invoked once per discovered entry, after the node carries its
// type, name and metadata. Returning a non-nil error aborts the entire scan.
// Context travels via closure capture.
type Callback func(tree *fstree.Tree, node *fstree.Node) (Verdict, error)

// ErrLinkTargetOverflow reports that a symlink's stat size cannot be turned
// into a read buffer without overflowing.
var ErrLinkTargetOverflow = errors.New("symlink target size out of range")

// AbortError wraps the error with which a callback stopped the scan.
type AbortError struct {
	Path string
	Err  error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("scan aborted at %q: %v", e.Path, e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}
