package toc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docmerge/internal/yamlutil"
)

// Sentinel errors for descriptor loading.
var (
	ErrDescriptorNotFound = errors.New("navigation descriptor not found")
	ErrDescriptorRead     = errors.New("failed to read navigation descriptor")
	ErrInvalidSyntax      = errors.New("malformed navigation descriptor")
	ErrInvalidRoot        = errors.New("navigation descriptor root must be an object with an items array")
)

// Format is the encoding of a navigation descriptor.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Options configures parsing.
type Options struct {
	Filter *Filter      // nil = default external patterns
	Logger *slog.Logger // nil = discard
}

// LoadFile reads and parses the descriptor at path.
func LoadFile(path string, opts Options) (*Tree, *FilterReport, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- descriptor path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrDescriptorNotFound, path)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrDescriptorRead, err)
	}
	return Parse(data, FormatFromPath(path), opts)
}

// Parse decodes a descriptor, filters external entries and builds the tree.
// On error no tree is returned.
func Parse(data []byte, format Format, opts Options) (*Tree, *FilterReport, error) {
	filter := opts.Filter
	if filter == nil {
		var err error
		filter, err = NewFilter()
		if err != nil {
			return nil, nil, err
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	doc, err := decode(data, format)
	if err != nil {
		return nil, nil, err
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return nil, nil, ErrInvalidRoot
	}
	items, ok := root["items"].([]any)
	if !ok {
		return nil, nil, ErrInvalidRoot
	}

	report := &FilterReport{}
	filtered := filter.filterItems(items, 1, report)
	for _, d := range report.Dropped {
		logger.Info("filtered navigation entry", "title", d.Title, "reason", string(d.Reason))
	}

	tree := &Tree{Roots: buildNodes(filtered, 1, "")}
	logger.Info("parsed navigation tree", "nodes", tree.Count(), "leaves", len(tree.Leaves()), "dropped", len(report.Dropped))

	return tree, report, nil
}

// decode unmarshals data into generic maps and slices.
func decode(data []byte, format Format) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidSyntax)
	}

	var doc any
	switch format {
	case FormatYAML:
		if err := yamlutil.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSyntax, err)
		}
		doc = normalizeYAML(doc)
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSyntax, err)
		}
	}
	return doc, nil
}

// normalizeYAML converts YAML mappings with non-string keys to
// map[string]any so both formats share one tree representation.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalizeYAML(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalizeYAML(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalizeYAML(child)
		}
		return t
	default:
		return v
	}
}

// buildNodes converts filtered descriptor items into nodes at depth.
func buildNodes(items []map[string]any, depth int, parent Path) []*Node {
	nodes := make([]*Node, 0, len(items))
	for i, item := range items {
		n := &Node{
			Kind:  kindOf(stringField(item, "type")),
			Title: stringField(item, "title"),
			URI:   stringField(item, "uri"),
			Slug:  stringField(item, "slug"),
			Depth: depth,
			Path:  parent.childPath(i),
		}
		if n.Kind == KindGroup {
			children, _ := item["items"].([]any)
			n.Children = buildNodes(objects(children), depth+1, n.Path)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// objects keeps the object entries of raw.
func objects(raw []any) []map[string]any {
	out := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
