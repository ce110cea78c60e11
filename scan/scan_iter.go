package scan

import (
	"fmt"
	"io"

	"github.com/v-anand/treesnap/fstree"
)

// ScanFrom populates root with the contents of path as produced by src.
// This is the portable walker: it re-derives paths by concatenation instead
// of holding directory handles, and it honors only the NoDirs, NoFiles,
// NoRecursion and KeepTime flags — device boundaries and special-file
// filtering are the Source's concern.
func ScanFrom(src Source, t *fstree.Tree, root *fstree.Node, path string, flags Flags, cb Callback) error {
	return ScanFromSubdir(src, t, root, path, "", flags, cb)
}

// ScanFromSubdir populates root with the contents of path/subdir (or path
// itself if subdir is empty) as produced by src.
func ScanFromSubdir(src Source, t *fstree.Tree, root *fstree.Node, path, subdir string, flags Flags, cb Callback) error {
	if !root.IsDir() {
		return fmt.Errorf("scanning %s/%s into %q: target is not a directory", path, subdir, root.Name())
	}
	if subdir != "" {
		path = path + "/" + subdir
	}
	return scanIterDir(src, t, root, path, flags, cb)
}

// scanIterDir lists one directory completely, then recurses into the
// directory children that made it into the tree, in name order.
func scanIterDir(src Source, t *fstree.Tree, dir *fstree.Node, path string, flags Flags, cb Callback) error {
	it, err := src.OpenDir(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	for {
		ent, nextErr := it.Next()
		if nextErr == io.EOF {
			break
		}
		if nextErr != nil {
			it.Close()
			return fmt.Errorf("reading directory entry in %s: %w", path, nextErr)
		}
		if ent.Name == "." || ent.Name == ".." {
			continue
		}
		if ent.Mode&fstree.ModeTypeMask == fstree.ModeDir {
			if flags&NoDirs != 0 {
				continue
			}
		} else if flags&NoFiles != 0 {
			continue
		}
		mtime := t.DefaultMtime
		if flags&KeepTime != 0 {
			mtime = fstree.ClampMtime(ent.ModTime)
		}
		n := fstree.NewNode(ent.Name, fstree.NodeMeta{
			Mode:    ent.Mode,
			ModTime: mtime,
			Size:    ent.Size,
		})
		if cb != nil {
			verdict, cbErr := cb(t, n)
			if cbErr != nil {
				it.Close()
				return &AbortError{Path: ent.Name, Err: cbErr}
			}
			if verdict == Discard {
				continue
			}
		}
		if err := dir.InsertChild(n); err != nil {
			it.Close()
			return err
		}
	}
	if err := it.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if flags&NoRecursion != 0 {
		return nil
	}
	for _, c := range dir.Children() {
		if !c.IsDir() {
			continue
		}
		if err := scanIterDir(src, t, c, path+"/"+c.Name(), flags, cb); err != nil {
			return err
		}
	}
	return nil
}
