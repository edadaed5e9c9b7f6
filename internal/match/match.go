// Package match resolves navigation leaves to indexed content files.
//
// Resolution never mutates the navigation tree: results are keyed by the
// node's toc.Path in a separate Resolutions map.
package match

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/alnah/go-docmerge/internal/index"
	"github.com/alnah/go-docmerge/internal/toc"
)

// ErrNoMatches indicates that no leaf could be resolved to a file.
var ErrNoMatches = errors.New("no navigation entry matched a content file")

// Lookuper resolves a lookup key to a file record.
type Lookuper interface {
	Lookup(key string) (*index.FileRecord, bool)
}

// Compile-time interface check.
var _ Lookuper = (*index.Index)(nil)

// Resolutions maps leaf paths to their resolved file.
type Resolutions map[toc.Path]*index.FileRecord

// Attempt records how a single leaf was resolved.
type Attempt struct {
	Path  toc.Path
	Title string
	Keys  []string          // candidate keys in priority order
	Hit   string            // key that matched, "" when unmatched
	File  *index.FileRecord // nil when unmatched
}

// Result is the outcome of matching a tree against an index.
type Result struct {
	Resolutions Resolutions
	Total       int // leaves visited
	Matched     int
	Attempts    []Attempt
	Unmatched   []*toc.Node
}

// Match visits every leaf of tree in pre-order and resolves it against idx.
// Unmatched leaves are reported in the result. ErrNoMatches is returned,
// together with the populated result, when nothing matched.
func Match(tree *toc.Tree, idx Lookuper, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	res := &Result{Resolutions: make(Resolutions)}

	tree.Walk(func(n *toc.Node) bool {
		if n.Kind != toc.KindLeaf {
			return true
		}
		res.Total++

		keys := CandidateKeys(n)
		attempt := Attempt{Path: n.Path, Title: n.Title, Keys: keys}
		for _, key := range keys {
			if rec, ok := idx.Lookup(key); ok {
				attempt.Hit = key
				attempt.File = rec
				break
			}
		}
		res.Attempts = append(res.Attempts, attempt)

		if attempt.File == nil {
			res.Unmatched = append(res.Unmatched, n)
			logger.Warn("no file for navigation entry", "title", n.Title, "path", string(n.Path))
			return true
		}

		res.Resolutions[n.Path] = attempt.File
		res.Matched++
		logger.Debug("matched navigation entry", "title", n.Title, "key", attempt.Hit, "file", attempt.File.RelativePath)
		return true
	})

	logger.Info("matched navigation entries", "matched", res.Matched, "total", res.Total)

	if res.Matched == 0 {
		return res, ErrNoMatches
	}
	return res, nil
}

// CandidateKeys returns the lookup keys for n in priority order with
// duplicates removed: URI-derived, then slug, then title variants.
func CandidateKeys(n *toc.Node) []string {
	var keys []string

	if k := URIKey(n.URI); k != "" {
		keys = append(keys, k, strings.ToLower(k))
	}
	if n.Slug != "" {
		keys = append(keys, n.Slug, strings.ToLower(n.Slug))
	}
	if n.Title != "" {
		hyphen := strings.ReplaceAll(n.Title, " ", "-")
		underscore := strings.ReplaceAll(n.Title, " ", "_")
		keys = append(keys,
			hyphen, strings.ToLower(hyphen),
			underscore, strings.ToLower(underscore),
		)
	}

	return dedupe(keys)
}

// URIKey derives a lookup key from a descriptor URI: leading slashes, a
// trailing ".md" and a leading "docs/" are removed in that order.
func URIKey(uri string) string {
	key := strings.TrimLeft(uri, "/")
	key = strings.TrimSuffix(key, ".md")
	key = strings.TrimPrefix(key, "docs/")
	return key
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
