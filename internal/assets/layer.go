package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// layer reads assets of every Kind from one fs.FS. check, when set, vets the
// slash-separated path before it is read.
type layer struct {
	fsys  fs.FS
	check func(rel string) error
}

func (l layer) load(kind Kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	rel := path.Join(kind.dir(), name+kind.ext())
	if l.check != nil {
		if err := l.check(rel); err != nil {
			return "", err
		}
	}

	content, err := fs.ReadFile(l.fsys, rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", kind.notFound(), name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// names lists the valid asset names of kind in sorted order. A missing
// directory yields none.
func (l layer) names(kind Kind) []string {
	entries, err := fs.ReadDir(l.fsys, kind.dir())
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), kind.ext())
		if !ok || e.IsDir() || ValidateAssetName(name) != nil {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
