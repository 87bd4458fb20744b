package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Notebook extracts code and markdown cell sources from a Jupyter
// notebook, ignoring outputs, metadata, and any other cell types. Cells
// are emitted in document order under 1-based labels; blank cells are
// dropped.
type Notebook struct{}

// notebookDocument is the subset of the notebook format the extractor
// cares about. Unknown fields are ignored, not propagated.
type notebookDocument struct {
	Cells []notebookCell `json:"cells"`
}

type notebookCell struct {
	Type   string     `json:"cell_type"`
	Source cellSource `json:"source"`
}

// cellSource normalizes the notebook "source" field, which may be a single
// string or a list of fragments concatenated in order with no separator.
type cellSource string

func (s *cellSource) UnmarshalJSON(data []byte) error {
	var fragments []string
	if err := json.Unmarshal(data, &fragments); err == nil {
		*s = cellSource(strings.Join(fragments, ""))
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("cell source is neither a string nor a list of strings: %w", err)
	}
	*s = cellSource(single)
	return nil
}

// Extract implements Extractor. A parse failure is returned as an error so
// the caller can log it and skip the file; it is never fatal to a run.
func (Notebook) Extract(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read notebook %s: %w", path, err)
	}

	var doc notebookDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("failed to parse notebook %s: %w", path, err)
	}

	var blocks []string
	for i, cell := range doc.Cells {
		source := string(cell.Source)
		if strings.TrimSpace(source) == "" {
			continue
		}

		switch cell.Type {
		case "code":
			blocks = append(blocks, fmt.Sprintf("--- Code Cell %d ---\n%s", i+1, source))
		case "markdown":
			blocks = append(blocks, fmt.Sprintf("--- Markdown Cell %d ---\n%s", i+1, source))
		}
	}

	return strings.Join(blocks, "\n\n"), nil
}
