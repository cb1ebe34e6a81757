package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
)

// NodeKind distinguishes file entries from folder entries in a project tree.
type NodeKind string

const (
	NodeFile   NodeKind = "file"
	NodeFolder NodeKind = "folder"
)

// FileNode is one entry in a project's file tree. A file carries content and no
// children; a folder carries children (possibly empty) and no content. Children
// are strictly owned by their parent: a node is never shared between two trees.
type FileNode struct {
	Name     string       `json:"name"`
	Type     NodeKind     `json:"type"`
	Content  string       `json:"content,omitempty"`
	Children FileNodeList `json:"children,omitempty"`
}

// IsFolder reports whether the node is a folder entry.
func (n *FileNode) IsFolder() bool {
	return n.Type == NodeFolder
}

// FileNodeList is the root-level (or per-folder) ordered sequence of nodes.
// It persists as a jsonb column.
type FileNodeList []FileNode

// Value implements driver.Valuer so a tree can be stored in a jsonb column.
func (l FileNodeList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal file tree: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for reading a jsonb column back into a tree.
func (l *FileNodeList) Scan(value interface{}) error {
	if value == nil {
		*l = FileNodeList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for file tree column: %T", value)
	}

	if len(data) == 0 {
		*l = FileNodeList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// GormDataType tells gorm to create the column as jsonb.
func (FileNodeList) GormDataType() string {
	return "jsonb"
}

// Validate checks the structural invariants of the tree: valid kinds, non-empty
// names without path separators, no content on folders, no children on files,
// and sibling names unique (case-sensitive).
func (l FileNodeList) Validate() error {
	return validateLevel(l, "")
}

func validateLevel(nodes FileNodeList, parentPath string) error {
	seen := make(map[string]bool, len(nodes))
	for i := range nodes {
		node := &nodes[i]
		if node.Name == "" {
			return fmt.Errorf("node at %q has an empty name", parentPath)
		}
		if strings.ContainsAny(node.Name, "/\\") {
			return fmt.Errorf("node name %q contains a path separator", node.Name)
		}
		if seen[node.Name] {
			return fmt.Errorf("duplicate sibling name %q under %q", node.Name, parentPath)
		}
		seen[node.Name] = true

		fullPath := joinPath(parentPath, node.Name)
		switch node.Type {
		case NodeFile:
			if len(node.Children) > 0 {
				return fmt.Errorf("file %q carries children", fullPath)
			}
		case NodeFolder:
			if node.Content != "" {
				return fmt.Errorf("folder %q carries content", fullPath)
			}
			if err := validateLevel(node.Children, fullPath); err != nil {
				return err
			}
		default:
			return fmt.Errorf("node %q has unknown type %q", fullPath, node.Type)
		}
	}
	return nil
}

// ErrWalkStop can be returned from a walk callback to end traversal early
// without reporting an error to the caller.
var ErrWalkStop = errors.New("walk stopped")

// WalkFunc receives each node with its full path and depth, in declaration
// order (depth-first, parents before children, siblings in source order).
type WalkFunc func(fullPath string, node *FileNode, depth int) error

// Walk traverses the tree depth-first in declaration order.
func (l FileNodeList) Walk(fn WalkFunc) error {
	err := walkLevel(l, "", 0, fn)
	if errors.Is(err, ErrWalkStop) {
		return nil
	}
	return err
}

func walkLevel(nodes FileNodeList, parentPath string, depth int, fn WalkFunc) error {
	for i := range nodes {
		node := &nodes[i]
		fullPath := joinPath(parentPath, node.Name)
		if err := fn(fullPath, node, depth); err != nil {
			return err
		}
		if node.IsFolder() {
			if err := walkLevel(node.Children, fullPath, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the tree. Trees are copied, never aliased, when
// handed between generation steps.
func (l FileNodeList) Clone() FileNodeList {
	if l == nil {
		return nil
	}
	out := make(FileNodeList, len(l))
	for i := range l {
		out[i] = FileNode{
			Name:     l[i].Name,
			Type:     l[i].Type,
			Content:  l[i].Content,
			Children: l[i].Children.Clone(),
		}
	}
	return out
}

// FindByPath resolves a slash-joined path to a node, or nil when absent.
func (l FileNodeList) FindByPath(target string) *FileNode {
	target = strings.Trim(target, "/")
	if target == "" {
		return nil
	}
	var found *FileNode
	l.Walk(func(fullPath string, node *FileNode, depth int) error {
		if fullPath == target {
			found = node
			return ErrWalkStop
		}
		return nil
	})
	return found
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return path.Join(parent, name)
}
