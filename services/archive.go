package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/peaks-ai/peaks-backend/errs"
	"github.com/peaks-ai/peaks-backend/models"
)

// BuildArchive serializes a file tree into a zip buffer. The tree is walked
// depth-first in declaration order: each folder becomes a directory entry,
// each file an entry with its content as UTF-8 bytes. All entries live under
// a root folder named after the project. An empty tree is an error, never an
// empty archive.
func BuildArchive(files models.FileNodeList, rootName string) ([]byte, error) {
	if len(files) == 0 {
		return nil, errs.NewNothingToExportError()
	}

	root := sanitizeArchiveName(rootName)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	err := files.Walk(func(fullPath string, node *models.FileNode, depth int) error {
		entryPath := root + "/" + fullPath
		if node.IsFolder() {
			_, err := zw.Create(entryPath + "/")
			return err
		}

		w, err := zw.Create(entryPath)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(node.Content))
		return err
	})
	if err != nil {
		zw.Close()
		return nil, fmt.Errorf("write archive entry: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeArchiveName strips characters that would break the root folder
// entry of the archive.
func sanitizeArchiveName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	if name == "" {
		name = "project"
	}
	return name
}
