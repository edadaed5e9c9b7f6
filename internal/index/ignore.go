package index

import (
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// IgnoreFileName is the project-specific ignore file read from the content root.
const IgnoreFileName = ".docmergeignore"

// alwaysSkipDirs are never descended into.
var alwaysSkipDirs = map[string]bool{
	".git":         true,
	".svn":         true,
	".hg":          true,
	"node_modules": true,
}

// ignoreRules combines gitignore-style files with exclude globs.
type ignoreRules struct {
	files    []gitignore.GitIgnore
	excludes []string
}

// newIgnoreRules loads .docmergeignore and .gitignore from root if present.
func newIgnoreRules(root string, excludes []string) *ignoreRules {
	r := &ignoreRules{excludes: excludes}
	for _, name := range []string{IgnoreFileName, ".gitignore"} {
		if gi := loadIgnoreFile(filepath.Join(root, name), root); gi != nil {
			r.files = append(r.files, gi)
		}
	}
	return r
}

// loadIgnoreFile returns nil when the file does not exist or cannot be read.
func loadIgnoreFile(filePath, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath) // #nosec G304 -- fixed name under the content root
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}

func (r *ignoreRules) skipDir(rel string) bool {
	if alwaysSkipDirs[path.Base(rel)] {
		return true
	}
	return r.matches(rel, true)
}

func (r *ignoreRules) skipFile(rel string) bool {
	return r.matches(rel, false)
}

func (r *ignoreRules) matches(rel string, isDir bool) bool {
	for _, gi := range r.files {
		if m := gi.Relative(rel, isDir); m != nil && m.Ignore() {
			return true
		}
	}
	for _, pattern := range r.excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
