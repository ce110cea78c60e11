package scan

import (
	"io"
	"io/fs"

	"github.com/pkg/sftp"
)

// SFTPSource reads directories over an SFTP connection, letting the portable
// walker snapshot a remote hierarchy. SFTP reports neither device numbers nor
// the full special-file type set, which is exactly the reduced contract the
// portable walker supports.
type SFTPSource struct {
	client *sftp.Client
}

// NewSFTPSource wraps an existing sftp.Client in a Source.
func NewSFTPSource(client *sftp.Client) *SFTPSource {
	return &SFTPSource{client: client}
}

func (s *SFTPSource) OpenDir(path string) (DirIterator, error) {
	// The protocol delivers listings in batches anyway, so one ReadDir per
	// directory costs no extra round trips. ReadDir does not follow symlinks.
	infos, err := s.client.ReadDir(path)
	if err != nil {
		return nil, err
	}
	return &sliceIterator{infos: infos}, nil
}

type sliceIterator struct {
	infos []fs.FileInfo
}

func (it *sliceIterator) Next() (DirEntry, error) {
	if len(it.infos) == 0 {
		return DirEntry{}, io.EOF
	}
	info := it.infos[0]
	it.infos = it.infos[1:]
	return DirEntry{
		Name:    info.Name(),
		Mode:    unixMode(info.Mode()),
		Size:    info.Size(),
		ModTime: info.ModTime().Unix(),
	}, nil
}

func (it *sliceIterator) Close() error {
	return nil
}
