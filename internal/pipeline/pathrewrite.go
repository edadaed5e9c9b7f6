package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewritable lists the element attributes holding local resource paths.
var rewritable = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// RewriteRelativePaths converts relative img[src] and a[href] values to
// absolute file:// URLs under sourceDir, so the page renders correctly from
// any location. URLs, anchors, absolute paths and paths escaping sourceDir
// are left alone. An empty sourceDir returns the input unchanged.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	base, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	root, fragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	walk(root, func(n *html.Node) {
		attr, ok := rewritable[n.DataAtom]
		if n.Type != html.ElementNode || !ok {
			return
		}
		for i := range n.Attr {
			if n.Attr[i].Key != attr {
				continue
			}
			if u, ok := localFileURL(n.Attr[i].Val, base); ok {
				n.Attr[i].Val = u
			}
		}
	})

	return renderHTML(root, fragment)
}

// parseHTML parses a full document, or a fragment in body context. For
// fragments the returned root is a synthetic document node.
func parseHTML(content string) (*html.Node, bool, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

// renderHTML renders fragments child by child, without an html/body wrapper.
func renderHTML(root *html.Node, fragment bool) (string, error) {
	var buf strings.Builder
	if !fragment {
		err := html.Render(&buf, root)
		return buf.String(), err
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// localFileURL returns the file:// URL for a relative path under base.
func localFileURL(ref, base string) (string, bool) {
	if !isRelativePath(ref) {
		return "", false
	}

	abs := filepath.Join(base, ref)
	if !isPathUnderDir(abs, base) {
		return "", false
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), true
}

// isRelativePath reports whether ref is a local relative path.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	for _, scheme := range []string{"http:", "https:", "file:", "data:", "mailto:"} {
		if strings.HasPrefix(strings.ToLower(ref), scheme) {
			return false
		}
	}
	return !filepath.IsAbs(ref)
}

// isPathUnderDir reports whether path is dir or lies below it.
func isPathUnderDir(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
