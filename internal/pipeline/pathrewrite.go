package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ImagePathOptions locates local images referenced by generated blocks.
type ImagePathOptions struct {
	// BaseDir resolves relative paths such as "img/a.jpg".
	BaseDir string
	// SiteRoot resolves root-relative paths such as "/hoge/a.jpg", which
	// spreadsheets usually hold as web paths. Empty leaves them untouched.
	SiteRoot string
}

// RewriteImagePaths converts local img[src] values to absolute file:// URLs so
// headless Chrome can load them from a temp file. Returns htmlContent
// unchanged when both directories are empty.
//
// Left untouched: URLs with a scheme, protocol-relative URLs, data URIs,
// paths escaping their root, and root-relative paths without SiteRoot.
func RewriteImagePaths(htmlContent string, opts ImagePathOptions) (string, error) {
	if opts.BaseDir == "" && opts.SiteRoot == "" {
		return htmlContent, nil
	}

	roots, err := opts.absolute()
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteImages(doc, roots)

	return renderHTML(doc, isFragment)
}

// absolute returns a copy with both directories made absolute.
func (o ImagePathOptions) absolute() (ImagePathOptions, error) {
	var out ImagePathOptions
	var err error
	if o.BaseDir != "" {
		if out.BaseDir, err = filepath.Abs(o.BaseDir); err != nil {
			return out, err
		}
	}
	if o.SiteRoot != "" {
		if out.SiteRoot, err = filepath.Abs(o.SiteRoot); err != nil {
			return out, err
		}
	}
	return out, nil
}

// parseHTML parses a full document or a fragment list.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML serializes doc. Fragments render their children only.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewriteImages(n *html.Node, roots ImagePathOptions) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for i, attr := range n.Attr {
			if attr.Key != "src" {
				continue
			}
			if abs, ok := resolveImagePath(attr.Val, roots); ok {
				n.Attr[i].Val = pathToFileURL(abs)
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteImages(c, roots)
	}
}

// resolveImagePath maps src to a local absolute path, reporting false when
// src must be left as written.
func resolveImagePath(src string, roots ImagePathOptions) (string, bool) {
	if src == "" || hasScheme(src) || strings.HasPrefix(src, "//") {
		return "", false
	}

	root := roots.BaseDir
	rel := src
	if strings.HasPrefix(src, "/") {
		if roots.SiteRoot == "" {
			return "", false
		}
		root = roots.SiteRoot
		rel = strings.TrimLeft(src, "/")
	}
	if root == "" {
		return "", false
	}

	abs := filepath.Join(root, filepath.FromSlash(rel))
	if !isPathUnderDir(abs, root) {
		return "", false
	}
	return abs, true
}

// hasScheme reports whether src starts with a URL scheme such as https: or
// data:. Single letters are Windows drive letters, not schemes. Values that
// do not parse as URLs count as external and stay untouched.
func hasScheme(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return true
	}
	return len(u.Scheme) > 1
}

// isPathUnderDir reports whether absPath stays inside dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
