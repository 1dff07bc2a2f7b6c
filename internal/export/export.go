// Package export serializes the current session to the same YAML document
// shape the importer accepts, so an exported map round-trips cleanly.
package export

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mapknit/mapknit/internal/store"
)

// Document is the on-the-wire export shape.
type Document struct {
	MapName     string `yaml:"mapName,omitempty"`
	NoDataColor string `yaml:"noDataColor,omitempty"`
	Sets        []Set  `yaml:"sets"`
}

// Set is one exported country set. Default-set membership is implicit and
// never listed, so the default set itself does not appear here; its color
// travels as Document.NoDataColor.
type Set struct {
	Name      string   `yaml:"name"`
	Color     string   `yaml:"color,omitempty"`
	Countries []string `yaml:"countries"`
}

// Build snapshots the store into an export document.
func Build(s *store.Store) Document {
	doc := Document{MapName: s.MapName()}
	members := s.Members()

	for _, set := range s.GetSets() {
		if set.ID == store.DefaultSetID {
			doc.NoDataColor = set.Color
			continue
		}
		doc.Sets = append(doc.Sets, Set{
			Name:      set.Name,
			Color:     set.Color,
			Countries: members[set.ID],
		})
	}
	return doc
}

// Marshal renders the document as YAML.
func Marshal(doc Document) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal export document: %w", err)
	}
	return out, nil
}
