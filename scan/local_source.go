package scan

import (
	"io"
	"io/fs"
	"os"
)

// Directory entries are fetched in batches to keep syscall counts low on
// large directories.
const dirBatchSize = 1024

// localSource reads directories from the local filesystem.
type localSource struct {
	batchSize int
}

// NewLocalSource returns a Source backed by the local filesystem.
func NewLocalSource() Source {
	return &localSource{batchSize: dirBatchSize}
}

func (s *localSource) OpenDir(path string) (DirIterator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &localIterator{f: f, batchSize: s.batchSize}, nil
}

type localIterator struct {
	f         *os.File
	pending   []fs.FileInfo
	batchSize int
}

func (it *localIterator) Next() (DirEntry, error) {
	for len(it.pending) == 0 {
		// Readdir lstats each entry, so symlinks report their own type.
		infos, err := it.f.Readdir(it.batchSize)
		if err != nil {
			return DirEntry{}, err // io.EOF once the directory is exhausted
		}
		if len(infos) == 0 {
			return DirEntry{}, io.EOF
		}
		it.pending = infos
	}
	info := it.pending[0]
	it.pending = it.pending[1:]
	return DirEntry{
		Name:    info.Name(),
		Mode:    unixMode(info.Mode()),
		Size:    info.Size(),
		ModTime: info.ModTime().Unix(),
	}, nil
}

func (it *localIterator) Close() error {
	return it.f.Close()
}
