//go:build unix

package scan

import (
	"fmt"
	"math"
	"os"

	"github.com/v-anand/treesnap/fstree"
	"golang.org/x/sys/unix"
)

// Scan populates root with the contents of the directory at path.
func Scan(t *fstree.Tree, root *fstree.Node, path string, flags Flags, cb Callback) error {
	return ScanSubdir(t, root, path, "", flags, cb)
}

// ScanSubdir populates root with the contents of path/subdir (or path itself
// if subdir is empty). The device the resolved directory lives on becomes the
// boundary reference for OneFilesystem; recursive calls inherit it unchanged,
// so this is the only place the boundary is ever established.
func ScanSubdir(t *fstree.Tree, root *fstree.Node, path, subdir string, flags Flags, cb Callback) error {
	if !root.IsDir() {
		return fmt.Errorf("scanning %s/%s into %q: target is not a directory", path, subdir, root.Name())
	}
	fd, err := unix.Open(path, unix.O_DIRECTORY|unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if subdir != "" {
		subFd, subErr := unix.Openat(fd, subdir, unix.O_DIRECTORY|unix.O_RDONLY|unix.O_CLOEXEC, 0)
		unix.Close(fd)
		if subErr != nil {
			return fmt.Errorf("opening %s/%s: %w", path, subdir, subErr)
		}
		fd = subFd
	}
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		unix.Close(fd)
		return fmt.Errorf("stat %s/%s: %w", path, subdir, err)
	}
	return populateDir(fd, t, root, uint64(st.Dev), flags, cb)
}

// populateDir takes ownership of dirFd and closes it on every exit path.
func populateDir(dirFd int, t *fstree.Tree, dir *fstree.Node, devStart uint64, flags Flags, cb Callback) error {
	f := os.NewFile(uintptr(dirFd), dir.Name())
	defer f.Close()
	names, err := f.Readdirnames(-1)
	if err != nil {
		return fmt.Errorf("reading directory %q: %w", dir.Name(), err)
	}
	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}
		var st unix.Stat_t
		if err := unix.Fstatat(dirFd, name, &st, unix.AT_SYMLINK_NOFOLLOW); err != nil {
			return fmt.Errorf("stat %q: %w", name, err)
		}
		mode := uint32(st.Mode)
		switch mode & fstree.ModeTypeMask {
		case fstree.ModeSocket:
			if flags&NoSockets != 0 {
				continue
			}
		case fstree.ModeSymlink:
			if flags&NoSymlinks != 0 {
				continue
			}
		case fstree.ModeRegular:
			if flags&NoFiles != 0 {
				continue
			}
		case fstree.ModeBlockDev:
			if flags&NoBlockDevs != 0 {
				continue
			}
		case fstree.ModeCharDev:
			if flags&NoCharDevs != 0 {
				continue
			}
		case fstree.ModeFifo:
			if flags&NoFifos != 0 {
				continue
			}
		}
		if flags&OneFilesystem != 0 && uint64(st.Dev) != devStart {
			continue
		}
		var target string
		if mode&fstree.ModeTypeMask == fstree.ModeSymlink {
			target, err = readLinkTarget(dirFd, name, st.Size)
			if err != nil {
				return err
			}
		}
		mtime := t.DefaultMtime
		if flags&KeepTime != 0 {
			mtime = fstree.ClampMtime(int64(st.Mtim.Sec))
		}
		isDir := mode&fstree.ModeTypeMask == fstree.ModeDir
		n := dir.Child(name)
		if n != nil {
			// Overlay scan: a node of this name was already placed here by
			// an earlier source (e.g. a manifest). It went through a
			// callback then, so it is kept as-is and not re-processed.
		} else if isDir && flags&NoDirs != 0 {
			// Directories are excluded and no pre-existing node references
			// this one, so nothing below it can be attached either.
			continue
		} else {
			n = fstree.NewNode(name, fstree.NodeMeta{
				Mode:    mode,
				UID:     st.Uid,
				GID:     st.Gid,
				ModTime: mtime,
				Size:    st.Size,
				Target:  target,
				Rdev:    uint64(st.Rdev),
			})
			if err := dir.InsertChild(n); err != nil {
				return err
			}
			if cb != nil {
				verdict, cbErr := cb(t, n)
				if cbErr != nil {
					dir.RemoveChild(n)
					return &AbortError{Path: name, Err: cbErr}
				}
				if verdict == Discard {
					dir.RemoveChild(n)
					continue
				}
			}
		}
		if n.IsDir() && flags&NoRecursion == 0 {
			childFd, openErr := unix.Openat(dirFd, name, unix.O_DIRECTORY|unix.O_RDONLY|unix.O_CLOEXEC, 0)
			if openErr != nil {
				return fmt.Errorf("opening %q: %w", name, openErr)
			}
			if err := populateDir(childFd, t, n, devStart, flags, cb); err != nil {
				return err
			}
		}
	}
	return nil
}

func readLinkTarget(dirFd int, name string, size int64) (string, error) {
	if size < 0 || size >= math.MaxInt {
		return "", fmt.Errorf("reading link %q: %w", name, ErrLinkTargetOverflow)
	}
	buf := make([]byte, size+1)
	n, err := unix.Readlinkat(dirFd, name, buf)
	if err != nil {
		return "", fmt.Errorf("reading link %q: %w", name, err)
	}
	return string(buf[:n]), nil
}
