package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

// Kind represents node variant
type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// File represents a fetched repository file
type File struct {
	Language string `json:"language"` // Language tag derived from file extension
	Content  string `json:"content"`  // Content or a placeholder when too large or not fetched
	Outdated bool   `json:"outdated"` // Outdated is set for dependency manifests
	Size     int    `json:"size"`     // Size in bytes as reported by the hosting API
}

// Folder represents a repository directory; Error is set when its listing could not be fetched
type Folder struct {
	Children *Tree  `json:"children"`
	Error    string `json:"error,omitempty"`
}

// Node represents either a File or a Folder
type Node struct {
	Kind   Kind
	File   *File
	Folder *Folder
}

// NewFileNode creates a file node
func NewFileNode(file *File) *Node {
	return &Node{Kind: KindFile, File: file}
}

// NewFolderNode creates a folder node, nil children are replaced with an empty tree
func NewFolderNode(children *Tree, errorMessage string) *Node {
	if children == nil {
		children = NewTree()
	}
	return &Node{Kind: KindFolder, Folder: &Folder{Children: children, Error: errorMessage}}
}

// IsFile returns true for file node
func (n *Node) IsFile() bool {
	return n.Kind == KindFile
}

// IsFolder returns true for folder node
func (n *Node) IsFolder() bool {
	return n.Kind == KindFolder
}

// Failed returns true when the node carries a contained fetch failure
func (n *Node) Failed() bool {
	return n.Kind == KindFolder && n.Folder != nil && n.Folder.Error != ""
}

func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case KindFile:
		file := n.File
		if file == nil {
			file = &File{}
		}
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*File
		}{KindFile, file})
	case KindFolder:
		folder := n.Folder
		if folder == nil {
			folder = &Folder{}
		}
		if folder.Children == nil {
			folder = &Folder{Children: NewTree(), Error: folder.Error}
		}
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*Folder
		}{KindFolder, folder})
	}
	return nil, fmt.Errorf("unsupported node kind: %q", n.Kind)
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Type {
	case KindFile:
		n.Kind, n.File, n.Folder = KindFile, &File{}, nil
		return json.Unmarshal(data, n.File)
	case KindFolder:
		n.Kind, n.File, n.Folder = KindFolder, nil, &Folder{}
		if err := json.Unmarshal(data, n.Folder); err != nil {
			return err
		}
		if n.Folder.Children == nil {
			n.Folder.Children = NewTree()
		}
		return nil
	}
	return fmt.Errorf("unsupported node type: %q", probe.Type)
}

// Tree represents one directory level, entry names are unique and kept in insertion order
type Tree struct {
	names []string
	nodes map[string]*Node
}

// NewTree creates an empty tree
func NewTree() *Tree {
	return &Tree{nodes: map[string]*Node{}}
}

// Put adds or replaces a named node, a replaced node keeps its position
func (t *Tree) Put(name string, node *Node) {
	if t.nodes == nil {
		t.nodes = map[string]*Node{}
	}
	if _, ok := t.nodes[name]; !ok {
		t.names = append(t.names, name)
	}
	t.nodes[name] = node
}

// Get returns a named node
func (t *Tree) Get(name string) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	node, ok := t.nodes[name]
	return node, ok
}

// Lookup returns node at slash separated path
func (t *Tree) Lookup(location string) (*Node, bool) {
	var node *Node
	current := t
	for _, name := range splitPath(location) {
		if current == nil {
			return nil, false
		}
		var ok bool
		if node, ok = current.Get(name); !ok {
			return nil, false
		}
		current = nil
		if node.IsFolder() && node.Folder != nil {
			current = node.Folder.Children
		}
	}
	return node, node != nil
}

// Names returns entry names in insertion order
func (t *Tree) Names() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.names...)
}

// Len returns number of entries on this level
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Walk visits all nodes depth first in insertion order, depth of top level nodes is 1;
// returning false from fn prevents descending into a folder
func (t *Tree) Walk(fn func(location string, depth int, node *Node) bool) {
	t.walk("", 1, fn)
}

func (t *Tree) walk(parent string, depth int, fn func(location string, depth int, node *Node) bool) {
	if t == nil {
		return
	}
	for _, name := range t.names {
		node := t.nodes[name]
		location := path.Join(parent, name)
		if !fn(location, depth, node) {
			continue
		}
		if node.IsFolder() && node.Folder != nil {
			node.Folder.Children.walk(location, depth+1, fn)
		}
	}
}

// FileCount returns number of file nodes in the whole tree
func (t *Tree) FileCount() int {
	count := 0
	t.Walk(func(_ string, _ int, node *Node) bool {
		if node.IsFile() {
			count++
		}
		return true
	})
	return count
}

// MaxDepth returns depth of the deepest node, 0 for empty tree
func (t *Tree) MaxDepth() int {
	result := 0
	t.Walk(func(_ string, depth int, _ *Node) bool {
		if depth > result {
			result = depth
		}
		return true
	})
	return result
}

func (t *Tree) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString("{")
	if t != nil {
		for i, name := range t.names {
			if i > 0 {
				buffer.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(t.nodes[name])
			if err != nil {
				return nil, fmt.Errorf("failed to marshal %s: %w", name, err)
			}
			buffer.Write(key)
			buffer.WriteByte(':')
			buffer.Write(value)
		}
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

func (t *Tree) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected tree object, but had: %v", token)
	}
	t.names = nil
	t.nodes = map[string]*Node{}
	for decoder.More() {
		token, err = decoder.Token()
		if err != nil {
			return err
		}
		name, ok := token.(string)
		if !ok {
			return fmt.Errorf("expected entry name, but had: %v", token)
		}
		node := &Node{}
		if err = decoder.Decode(node); err != nil {
			return fmt.Errorf("failed to decode %s: %w", name, err)
		}
		t.Put(name, node)
	}
	_, err = decoder.Token()
	return err
}

func splitPath(location string) []string {
	return strings.FieldsFunc(location, func(r rune) bool { return r == '/' })
}
