package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Asset resolution errors.
var (
	ErrAssetMissing = errors.New("referenced image does not exist")
	ErrAssetOutside = errors.New("referenced image is outside the base directory")
)

// ResolveAssets converts relative image and link paths to absolute file:// URLs
// under baseDir. If baseDir is empty, returns the HTML unchanged.
//
// A relative img[src] must exist and stay inside baseDir; otherwise the
// document is rejected with ErrAssetMissing or ErrAssetOutside, since Chrome
// would silently print a broken image. Relative a[href] values are rewritten
// when they stay inside baseDir and left alone otherwise.
//
// URLs, data URIs, anchors and absolute paths are not touched.
func ResolveAssets(htmlContent, baseDir string) (string, error) {
	if baseDir == "" {
		return htmlContent, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	if err := rewriteNode(doc, absBase); err != nil {
		return "", err
	}

	return renderHTML(doc, isFragment)
}

// parseHTML parses a full document or a body fragment.
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

// renderHTML renders the tree; fragments render their children only.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, baseDir string) error {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			if err := rewriteImage(n, baseDir); err != nil {
				return err
			}
		case atom.A:
			rewriteLink(n, baseDir)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := rewriteNode(c, baseDir); err != nil {
			return err
		}
	}
	return nil
}

func rewriteImage(n *html.Node, baseDir string) error {
	i, val, ok := attr(n, "src")
	if !ok || !isRelativePath(val) {
		return nil
	}

	absPath := filepath.Join(baseDir, filepath.FromSlash(val))
	if !isPathUnderDir(absPath, baseDir) {
		return fmt.Errorf("%w: %s", ErrAssetOutside, val)
	}
	if info, err := os.Stat(absPath); err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrAssetMissing, val)
	}

	n.Attr[i].Val = pathToFileURL(absPath)
	return nil
}

func rewriteLink(n *html.Node, baseDir string) {
	i, val, ok := attr(n, "href")
	if !ok || !isRelativePath(val) {
		return
	}

	absPath := filepath.Join(baseDir, filepath.FromSlash(val))
	if isPathUnderDir(absPath, baseDir) {
		n.Attr[i].Val = pathToFileURL(absPath)
	}
}

func attr(n *html.Node, key string) (int, string, bool) {
	for i, a := range n.Attr {
		if a.Key == key {
			return i, a.Val, true
		}
	}
	return -1, "", false
}

// isRelativePath reports whether ref is a relative filesystem path.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	for _, scheme := range []string{"http://", "https://", "file://", "data:", "mailto:"} {
		if strings.HasPrefix(strings.ToLower(ref), scheme) {
			return false
		}
	}
	return !filepath.IsAbs(ref) && !strings.HasPrefix(ref, "/")
}

// isPathUnderDir checks if absPath is dir or a descendant of dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL on every OS.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // C:/x -> /C:/x
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
