package cmd

import (
	"path"

	"github.com/disiqueira/gotree/v3"
)

// pathTree renders slash-separated asset paths as a directory tree.
type pathTree struct {
	tree gotree.Tree
	dirs map[string]gotree.Tree
}

func newPathTree(rootLabel string) pathTree {
	return pathTree{tree: gotree.New(rootLabel), dirs: make(map[string]gotree.Tree)}
}

func (t pathTree) dir(dirPath string) gotree.Tree {
	if dirPath == "." || dirPath == "/" || dirPath == "" {
		return t.tree
	}
	d := t.dirs[dirPath]
	if d == nil {
		d = t.dir(path.Dir(dirPath)).Add(path.Base(dirPath))
		t.dirs[dirPath] = d
	}
	return d
}

func (t pathTree) insert(assetPath string) {
	t.dir(path.Dir(assetPath)).Add(path.Base(assetPath))
}

func (t pathTree) render() string {
	return t.tree.Print()
}
