package storage

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pstuifzand/tui-dragtree/internal/model"
)

// ErrDuplicateID is returned when a document uses the same node id twice
var ErrDuplicateID = errors.New("duplicate node id")

// Document is a tree document on disk
type Document struct {
	Title            string                `json:"title"`
	Nodes            []*model.Node[string] `json:"nodes"`
	OriginalFilename string                `json:"originalFilename,omitempty"`
}

// JSONStore handles JSON file persistence
type JSONStore struct {
	FilePath string
}

// NewJSONStore creates a new JSON store for the given file path
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{
		FilePath: filePath,
	}
}

// Load loads a document from the JSON file. Siblings are ordered by their
// orderIndex and renumbered 1..n, so hand-written files may leave it out.
func (s *JSONStore) Load() (*Document, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{Title: "Untitled"}, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if err := normalize(doc.Nodes, make(map[string]struct{})); err != nil {
		return nil, fmt.Errorf("invalid document %s: %w", s.FilePath, err)
	}

	return &doc, nil
}

// normalize sorts and renumbers every sibling list and rejects duplicate ids
func normalize(siblings []*model.Node[string], seen map[string]struct{}) error {
	slices.SortStableFunc(siblings, func(a, b *model.Node[string]) int {
		return cmp.Compare(a.OrderIndex, b.OrderIndex)
	})
	model.Renumber(siblings)
	for _, n := range siblings {
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, n.ID)
		}
		seen[n.ID] = struct{}{}
		if err := normalize(n.Children, seen); err != nil {
			return err
		}
	}
	return nil
}

// Save saves a document to the JSON file
func (s *JSONStore) Save(doc *Document) error {
	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	// Replace the file atomically
	tmp := s.FilePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, s.FilePath); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}

// FileExists checks if the document file exists
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}
