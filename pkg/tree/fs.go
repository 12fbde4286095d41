package tree

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// BuildFS walks the directory rooted at root and returns the weighted
// tree underneath it: directories become internal nodes whose weight is
// the recursive byte total, regular files become leaves weighted by
// their size. Symlinks and other irregular entries are never followed.
//
// Unreadable directories and files are skipped with a warning; only a
// missing or unreadable root fails the build. Entries matching the
// ignore list are skipped silently.
func BuildFS(root string, opts ...Option) (*Node, error) {
	o := buildOptions(opts)
	cleanRoot := filepath.Clean(root)

	byPath := make(map[string]*Node)
	var rootNode *Node

	walkErr := filepath.WalkDir(cleanRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == cleanRoot && rootNode == nil {
				return fmt.Errorf("reading root %s: %w", p, err)
			}
			log.Warn("skipping unreadable entry", "path", p, "err", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if p != cleanRoot && o.ignored(d.Name()) {
			log.Debug("ignoring entry", "path", p)
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		switch {
		case p == cleanRoot:
			rootNode = &Node{Name: filepath.Base(cleanRoot), Dir: d.IsDir()}
			rootNode.Path = rootNode.Name
			if !d.IsDir() {
				// Root is a single file: a one-leaf tree.
				info, ierr := d.Info()
				if ierr != nil {
					return fmt.Errorf("reading root %s: %w", p, ierr)
				}
				rootNode.Weight = info.Size()
			}
			byPath[p] = rootNode

		case d.IsDir():
			dir := &Node{Name: d.Name(), Dir: true}
			byPath[filepath.Dir(p)].AddChild(dir)
			byPath[p] = dir

		case d.Type().IsRegular():
			info, ierr := d.Info()
			if ierr != nil {
				log.Warn("skipping unreadable file", "path", p, "err", ierr)
				return nil
			}
			byPath[filepath.Dir(p)].AddChild(&Node{Name: d.Name(), Weight: info.Size()})

		default:
			// Symlinks, sockets, devices: not part of the size picture.
			log.Debug("skipping irregular entry", "path", p, "type", d.Type().String())
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	rootNode.recompute()
	return rootNode, nil
}
