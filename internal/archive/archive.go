// Package archive reads and writes the export document: the full
// project collection plus an export timestamp, as a JSON file.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hollis/boardwalk/internal/model"
)

// ErrMalformedImport is returned when an import document fails to
// parse or lacks the expected shape. The caller's state stays as it
// was; only the error is surfaced.
var ErrMalformedImport = errors.New("malformed import document")

// Document is the export artifact
type Document struct {
	Projects   []model.Project `json:"projects"`
	ExportDate time.Time       `json:"exportDate"`
}

// Export writes the collection as an indented JSON document
func Export(w io.Writer, projects []model.Project) error {
	doc := Document{
		Projects:   projects,
		ExportDate: time.Now(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// ExportFile writes the export document to a file
func ExportFile(path string, projects []model.Project) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := Export(f, projects); err != nil {
		return err
	}
	return f.Sync()
}

// Import parses an export-shaped document. Any document carrying a
// projects field of the right schema is accepted; stored completed
// flags are recomputed from status, never trusted.
func Import(r io.Reader) ([]model.Project, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	if doc.Projects == nil {
		return nil, fmt.Errorf("%w: missing projects field", ErrMalformedImport)
	}

	for i := range doc.Projects {
		p := &doc.Projects[i]
		if p.ID == "" {
			return nil, fmt.Errorf("%w: project %d has no id", ErrMalformedImport, i)
		}
		for j := range p.Tasks {
			t := &p.Tasks[j]
			if t.ID == "" {
				return nil, fmt.Errorf("%w: task %d of project %q has no id", ErrMalformedImport, j, p.ID)
			}
			t.ProjectID = p.ID
			t.SyncCompleted()
		}
	}

	return doc.Projects, nil
}

// ImportFile parses the export document from a file
func ImportFile(path string) ([]model.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	return Import(f)
}
