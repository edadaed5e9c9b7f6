// Package index discovers Markdown content files and builds the lookup used
// to resolve navigation entries to files.
package index

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Sentinel errors for index operations.
var (
	ErrRootNotFound    = errors.New("content root not found")
	ErrRootNotDir      = errors.New("content root is not a directory")
	ErrRootUnreadable  = errors.New("content root cannot be read")
	ErrInvalidPattern  = errors.New("invalid include pattern")
	ErrInvalidExcludes = errors.New("invalid exclude pattern")
)

// DefaultInclude matches Markdown files at any depth.
const DefaultInclude = "**/*.md"

// FileRecord describes one discovered content file. Records are never
// modified after the index is built.
type FileRecord struct {
	Path         string // Absolute path
	RelativePath string // Relative to the content root, forward slashes
	ID           string // RelativePath without the .md extension
	Size         int64  // Bytes
}

// Name returns the final path segment of the identifier.
func (r *FileRecord) Name() string {
	return path.Base(r.ID)
}

// Options configures discovery.
type Options struct {
	Include  string       // doublestar pattern, default DefaultInclude
	Excludes []string     // doublestar patterns matched against relative paths
	Logger   *slog.Logger // nil = discard
}

// Index maps lookup keys to file records.
type Index struct {
	root  string
	files []*FileRecord
	keys  map[string]*FileRecord
}

// New returns an empty index rooted at root. Use Add to register files.
func New(root string) *Index {
	return &Index{
		root: root,
		keys: make(map[string]*FileRecord),
	}
}

// Build walks root and indexes every file matching opts.Include.
// Files are registered in lexical order of their relative path so key
// collisions resolve the same way on every platform.
func Build(root string, opts Options) (*Index, error) {
	include := opts.Include
	if include == "" {
		include = DefaultInclude
	}
	if !doublestar.ValidatePattern(include) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, include)
	}
	for _, p := range opts.Excludes {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidExcludes, p)
		}
	}

	absRoot, err := checkRoot(root)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ignore := newIgnoreRules(absRoot, opts.Excludes)

	var found []*FileRecord
	walkErr := filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == absRoot {
				return err
			}
			logger.Warn("skipping unreadable path", "path", p, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, p)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if ignore.skipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		matched, _ := doublestar.Match(include, rel)
		if !matched || ignore.skipFile(rel) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			logger.Warn("skipping file", "path", rel, "error", infoErr)
			return nil
		}

		found = append(found, &FileRecord{
			Path:         p,
			RelativePath: rel,
			ID:           strings.TrimSuffix(rel, path.Ext(rel)),
			Size:         info.Size(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrRootUnreadable, walkErr)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].RelativePath < found[j].RelativePath
	})

	idx := New(absRoot)
	for _, rec := range found {
		idx.Add(rec)
		logger.Debug("indexed file", "path", rec.RelativePath, "bytes", rec.Size)
	}

	if len(found) == 0 {
		logger.Warn("no content files found", "root", absRoot, "include", include)
	} else {
		logger.Info("indexed content files", "files", len(found), "keys", len(idx.keys), "bytes", idx.TotalSize())
	}

	return idx, nil
}

// checkRoot resolves root to an absolute, readable directory.
func checkRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRootNotFound, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrRootNotFound, absRoot)
		}
		return "", fmt.Errorf("%w: %v", ErrRootUnreadable, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrRootNotDir, absRoot)
	}
	if _, err := os.ReadDir(absRoot); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRootUnreadable, err)
	}
	return absRoot, nil
}

// Add registers rec under its lookup keys. Keys already present keep their
// existing record.
func (x *Index) Add(rec *FileRecord) {
	x.files = append(x.files, rec)
	for _, key := range Keys(rec) {
		if _, exists := x.keys[key]; !exists {
			x.keys[key] = rec
		}
	}
}

// Keys returns the lookup keys of rec in registration priority order:
// identifier, lowercase identifier, final segment, lowercase final segment.
func Keys(rec *FileRecord) []string {
	name := rec.Name()
	return []string{
		rec.ID,
		strings.ToLower(rec.ID),
		name,
		strings.ToLower(name),
	}
}

// Lookup returns the record registered for key.
func (x *Index) Lookup(key string) (*FileRecord, bool) {
	rec, ok := x.keys[key]
	return rec, ok
}

// Root returns the absolute content root.
func (x *Index) Root() string {
	return x.root
}

// Files returns all records in registration order.
func (x *Index) Files() []*FileRecord {
	out := make([]*FileRecord, len(x.files))
	copy(out, x.files)
	return out
}

// Len returns the number of indexed files.
func (x *Index) Len() int {
	return len(x.files)
}

// KeyCount returns the number of distinct lookup keys.
func (x *Index) KeyCount() int {
	return len(x.keys)
}

// TotalSize returns the combined size of all indexed files.
func (x *Index) TotalSize() int64 {
	var total int64
	for _, rec := range x.files {
		total += rec.Size
	}
	return total
}
