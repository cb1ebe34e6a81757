package services

import (
	"fmt"
	"html"
	"path"
	"regexp"
	"strings"

	"github.com/peaks-ai/peaks-backend/models"
)

const previewEntryName = "index.html"

var (
	stylesheetLinkRe = regexp.MustCompile(`<link\b[^>]*rel=["']stylesheet["'][^>]*>`)
	hrefAttrRe       = regexp.MustCompile(`href=["']([^"']+)["']`)
	scriptTagRe      = regexp.MustCompile(`<script\b[^>]*\bsrc=["'][^"']+["'][^>]*>\s*</script>`)
	srcAttrRe        = regexp.MustCompile(`src=["']([^"']+)["']`)
)

// RenderPreview synthesizes a single self-contained HTML document from a file
// tree. It locates an index.html entry file (root level preferred, nearest
// match otherwise), inlines the stylesheet links and script tags that point at
// files present in the tree, and leaves everything else untouched. When no
// entry file exists a placeholder document is returned. Static rendering only:
// nothing is executed server-side.
func RenderPreview(files models.FileNodeList, projectType string) string {
	entryPath, entry := findEntryFile(files)
	if entry == nil {
		return placeholderDocument(projectType)
	}

	contents := collectFileContents(files)
	entryDir := path.Dir(entryPath)
	doc := entry.Content

	doc = stylesheetLinkRe.ReplaceAllStringFunc(doc, func(tag string) string {
		ref := firstSubmatch(hrefAttrRe, tag)
		if css, ok := resolveReference(contents, entryDir, ref); ok {
			return "<style>\n" + css + "\n</style>"
		}
		return tag
	})

	doc = scriptTagRe.ReplaceAllStringFunc(doc, func(tag string) string {
		ref := firstSubmatch(srcAttrRe, tag)
		if js, ok := resolveReference(contents, entryDir, ref); ok {
			return "<script>\n" + js + "\n</script>"
		}
		return tag
	})

	return doc
}

// findEntryFile returns the designated preview entry: index.html at the root
// if present, otherwise the first index.html in declaration order.
func findEntryFile(files models.FileNodeList) (string, *models.FileNode) {
	for i := range files {
		if !files[i].IsFolder() && files[i].Name == previewEntryName {
			return files[i].Name, &files[i]
		}
	}

	var foundPath string
	var found *models.FileNode
	files.Walk(func(fullPath string, node *models.FileNode, depth int) error {
		if !node.IsFolder() && node.Name == previewEntryName {
			foundPath = fullPath
			found = node
			return models.ErrWalkStop
		}
		return nil
	})
	return foundPath, found
}

func collectFileContents(files models.FileNodeList) map[string]string {
	contents := make(map[string]string)
	files.Walk(func(fullPath string, node *models.FileNode, depth int) error {
		if !node.IsFolder() {
			contents[fullPath] = node.Content
		}
		return nil
	})
	return contents
}

// resolveReference maps a relative asset reference to a file in the tree,
// trying the entry file's directory first and the tree root second.
func resolveReference(contents map[string]string, entryDir, ref string) (string, bool) {
	if ref == "" || strings.Contains(ref, "://") || strings.HasPrefix(ref, "//") {
		return "", false
	}

	ref = strings.TrimPrefix(ref, "./")
	candidates := []string{strings.TrimPrefix(ref, "/")}
	if entryDir != "." && entryDir != "" {
		candidates = append([]string{path.Join(entryDir, ref)}, candidates...)
	}

	for _, candidate := range candidates {
		if body, ok := contents[candidate]; ok {
			return body, true
		}
	}
	return "", false
}

func firstSubmatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func placeholderDocument(projectType string) string {
	label := projectType
	if label == "" {
		label = "project"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>No Preview Available</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; display: flex; align-items: center; justify-content: center; height: 100vh; margin: 0; color: #555; }
    .placeholder { text-align: center; }
  </style>
</head>
<body>
  <div class="placeholder">
    <h1>No Preview Available</h1>
    <p>This %s has no index.html to preview yet.</p>
  </div>
</body>
</html>`, html.EscapeString(label))
}
