package archive

import (
	"fmt"
	"os"
	"strings"
)

// Extractor produces the archivable text content of one file. An error
// means the file contributes nothing; the caller decides how to report it.
type Extractor interface {
	Extract(path string) (string, error)
}

// PlainText reads a file verbatim, substituting the Unicode replacement
// character for byte sequences that are not valid UTF-8. It never fails on
// malformed encoding, only on unreadable files.
type PlainText struct{}

// Extract implements Extractor.
func (PlainText) Extract(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return strings.ToValidUTF8(string(raw), "�"), nil
}
