// File: pkg/archive/walker.go
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// WalkFunc is invoked once per visited directory with the directory's
// absolute path, its filenames in ascending order, and the number of child
// directories pruned at that level. Returning an error aborts the walk.
type WalkFunc func(dir string, filenames []string, pruned int) error

// Walk enumerates the tree under root in pre-order, pruning excluded
// directories before descending so no descendant of an excluded directory
// is ever visited. Subdirectories are expanded in ascending name order,
// making the visit sequence deterministic for a fixed tree. Unreadable
// directories are logged at warn level and skipped; only fn's error stops
// the walk.
func Walk(root string, rules *Rules, logger *zap.Logger, fn WalkFunc) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	return walkDir(absRoot, absRoot, rules, logger, fn)
}

func walkDir(dir, root string, rules *Rules, logger *zap.Logger, fn WalkFunc) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("Cannot read directory, skipping subtree", zap.String("dir", dir), zap.Error(err))
		return nil
	}

	atRoot := dir == root
	var subdirs, filenames []string
	pruned := 0

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			filenames = append(filenames, name)
			continue
		}
		if rules.ExcludesDir(name, atRoot) {
			pruned++
			logger.Debug("Pruned excluded directory", zap.String("dir", filepath.Join(dir, name)))
			continue
		}
		subdirs = append(subdirs, name)
	}

	sort.Strings(subdirs)
	sort.Strings(filenames)

	if err := fn(dir, filenames, pruned); err != nil {
		return err
	}

	for _, name := range subdirs {
		if err := walkDir(filepath.Join(dir, name), root, rules, logger, fn); err != nil {
			return err
		}
	}
	return nil
}
