package scan

import (
	"io/fs"

	"github.com/v-anand/treesnap/fstree"
)

// DirEntry is one record produced by a DirIterator.
type DirEntry struct {
	Name string
	// Mode carries unix-style type and permission bits.
	Mode uint32
	Size int64
	// ModTime is a unix timestamp in seconds.
	ModTime int64
}

// DirIterator produces the entries of one directory, one at a time.
// Next returns io.EOF after the last entry.
type DirIterator interface {
	Next() (DirEntry, error)
	Close() error
}

// Source opens directory iterators by path. Implementations decide what a
// path means (local filesystem, SFTP connection, ...) and are expected to
// report entry types without following symlinks.
type Source interface {
	OpenDir(path string) (DirIterator, error)
}

// unixMode converts an fs.FileMode into the unix-style bits nodes carry.
func unixMode(m fs.FileMode) uint32 {
	bits := uint32(m.Perm())
	switch {
	case m.IsRegular():
		bits |= fstree.ModeRegular
	case m.IsDir():
		bits |= fstree.ModeDir
	case m&fs.ModeSymlink != 0:
		bits |= fstree.ModeSymlink
	case m&fs.ModeNamedPipe != 0:
		bits |= fstree.ModeFifo
	case m&fs.ModeSocket != 0:
		bits |= fstree.ModeSocket
	case m&fs.ModeCharDevice != 0:
		bits |= fstree.ModeCharDev
	case m&fs.ModeDevice != 0:
		bits |= fstree.ModeBlockDev
	}
	if m&fs.ModeSetuid != 0 {
		bits |= 0o4000
	}
	if m&fs.ModeSetgid != 0 {
		bits |= 0o2000
	}
	if m&fs.ModeSticky != 0 {
		bits |= 0o1000
	}
	return bits
}
