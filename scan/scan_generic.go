//go:build !unix

package scan

import "github.com/v-anand/treesnap/fstree"

// On systems without fd-relative directory operations the entry points run
// the portable walker against the local filesystem.

// Scan populates root with the contents of the directory at path.
func Scan(t *fstree.Tree, root *fstree.Node, path string, flags Flags, cb Callback) error {
	return ScanFrom(NewLocalSource(), t, root, path, flags, cb)
}

// ScanSubdir populates root with the contents of path/subdir (or path itself
// if subdir is empty).
func ScanSubdir(t *fstree.Tree, root *fstree.Node, path, subdir string, flags Flags, cb Callback) error {
	return ScanFromSubdir(NewLocalSource(), t, root, path, subdir, flags, cb)
}
