package lib

import (
	"io"
	"os"

	set "github.com/deckarep/golang-set/v2"
	"github.com/v-anand/treesnap/lineio"
)

// IsReadableDirectory checks whether a readable directory exists at given path
func IsReadableDirectory(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsReadableFile checks whether argument is a readable file
func IsReadableFile(path string) bool {
	fileInfo, statErr := os.Stat(path)
	if statErr != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}

// ReadNameSet reads a newline-separated list of names (e.g. an exclusion
// list), returning the set and the first few entries for display in help
// text. Blank lines and surrounding whitespace are ignored.
func ReadNameSet(r io.Reader, name string) (set.Set[string], []string, error) {
	lines, err := lineio.NewReader(r, name, lineio.Trim|lineio.SkipEmpty).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	names := set.NewSet[string](lines...)
	firstFew := lines
	if len(firstFew) > 3 {
		firstFew = firstFew[:3]
	}
	return names, firstFew, nil
}
