package scan

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/v-anand/treesnap/fstree"
)

// fakeSource serves canned directory listings keyed by path.
type fakeSource struct {
	dirs map[string][]DirEntry
}

func (s *fakeSource) OpenDir(path string) (DirIterator, error) {
	entries, ok := s.dirs[path]
	if !ok {
		return nil, errors.New("no such directory: " + path)
	}
	return &fakeIterator{entries: entries}, nil
}

type fakeIterator struct {
	entries []DirEntry
	pos     int
}

func (it *fakeIterator) Next() (DirEntry, error) {
	if it.pos >= len(it.entries) {
		return DirEntry{}, io.EOF
	}
	ent := it.entries[it.pos]
	it.pos++
	return ent, nil
}

func (it *fakeIterator) Close() error {
	return nil
}

func regularEntry(name string, size int64) DirEntry {
	return DirEntry{Name: name, Mode: fstree.ModeRegular | 0o644, Size: size, ModTime: 1600000000}
}

func dirEntry(name string) DirEntry {
	return DirEntry{Name: name, Mode: fstree.ModeDir | 0o755, ModTime: 1600000000}
}

func newFakeSource() *fakeSource {
	return &fakeSource{dirs: map[string][]DirEntry{
		"top": {
			regularEntry("zoo.txt", 10),
			dirEntry("sub"),
			{Name: ".", Mode: fstree.ModeDir | 0o755},
			regularEntry("alpha.txt", 20),
		},
		"top/sub": {
			regularEntry("inner.txt", 30),
		},
	}}
}

func iterChildNames(n *fstree.Node) []string {
	var names []string
	for _, c := range n.Children() {
		names = append(names, c.Name())
	}
	return names
}

func TestScanFromBuildsSortedTree(t *testing.T) {
	tree := fstree.NewTree(0)
	assert.NoError(t, ScanFrom(newFakeSource(), tree, tree.Root, "top", 0, nil))

	assert.Equal(t, []string{"alpha.txt", "sub", "zoo.txt"}, iterChildNames(tree.Root))
	sub := tree.Root.Child("sub")
	assert.NotNil(t, sub)
	assert.Equal(t, []string{"inner.txt"}, iterChildNames(sub))
	assert.Equal(t, int64(30), sub.Child("inner.txt").Size)
}

func TestScanFromSubdir(t *testing.T) {
	tree := fstree.NewTree(0)
	assert.NoError(t, ScanFromSubdir(newFakeSource(), tree, tree.Root, "top", "sub", 0, nil))
	assert.Equal(t, []string{"inner.txt"}, iterChildNames(tree.Root))
}

func TestScanFromNoDirs(t *testing.T) {
	tree := fstree.NewTree(0)
	assert.NoError(t, ScanFrom(newFakeSource(), tree, tree.Root, "top", NoDirs, nil))
	assert.Equal(t, []string{"alpha.txt", "zoo.txt"}, iterChildNames(tree.Root))
}

func TestScanFromNoFiles(t *testing.T) {
	tree := fstree.NewTree(0)
	assert.NoError(t, ScanFrom(newFakeSource(), tree, tree.Root, "top", NoFiles, nil))
	assert.Equal(t, []string{"sub"}, iterChildNames(tree.Root))
	assert.Empty(t, tree.Root.Child("sub").Children())
}

func TestScanFromNoRecursion(t *testing.T) {
	tree := fstree.NewTree(0)
	assert.NoError(t, ScanFrom(newFakeSource(), tree, tree.Root, "top", NoRecursion, nil))
	assert.Equal(t, []string{"alpha.txt", "sub", "zoo.txt"}, iterChildNames(tree.Root))
	assert.Empty(t, tree.Root.Child("sub").Children())
}

func TestScanFromTimestamps(t *testing.T) {
	tree := fstree.NewTree(99)
	assert.NoError(t, ScanFrom(newFakeSource(), tree, tree.Root, "top", 0, nil))
	assert.Equal(t, uint32(99), tree.Root.Child("alpha.txt").ModTime)

	kept := fstree.NewTree(99)
	assert.NoError(t, ScanFrom(newFakeSource(), kept, kept.Root, "top", KeepTime, nil))
	assert.Equal(t, uint32(1600000000), kept.Root.Child("alpha.txt").ModTime)
}

func TestScanFromDiscardNeverLinksNode(t *testing.T) {
	tree := fstree.NewTree(0)
	err := ScanFrom(newFakeSource(), tree, tree.Root, "top", 0,
		func(tr *fstree.Tree, n *fstree.Node) (Verdict, error) {
			if n.Name() == "zoo.txt" {
				assert.Nil(t, n.Parent) // judged before linking
				return Discard, nil
			}
			return Accept, nil
		})
	assert.NoError(t, err)
	assert.Equal(t, []string{"alpha.txt", "sub"}, iterChildNames(tree.Root))
}

func TestScanFromCallbackErrorAborts(t *testing.T) {
	boom := errors.New("rejected")
	tree := fstree.NewTree(0)
	err := ScanFrom(newFakeSource(), tree, tree.Root, "top", 0,
		func(tr *fstree.Tree, n *fstree.Node) (Verdict, error) {
			if n.Name() == "inner.txt" {
				return Accept, boom
			}
			return Accept, nil
		})
	assert.ErrorIs(t, err, boom)
	var abort *AbortError
	assert.ErrorAs(t, err, &abort)
	assert.Equal(t, "inner.txt", abort.Path)
	assert.Empty(t, tree.Root.Child("sub").Children())
}

func TestScanFromMissingDirectory(t *testing.T) {
	tree := fstree.NewTree(0)
	assert.Error(t, ScanFrom(newFakeSource(), tree, tree.Root, "elsewhere", 0, nil))
}

func TestScanFromIntoNonDirectoryFails(t *testing.T) {
	tree := fstree.NewTree(0)
	leaf := fstree.NewNode("leaf", fstree.NodeMeta{Mode: fstree.ModeRegular | 0o644})
	assert.Error(t, ScanFrom(newFakeSource(), tree, leaf, "top", 0, nil))
}
