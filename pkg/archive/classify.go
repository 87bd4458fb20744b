// File: pkg/archive/classify.go
package archive

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Verdict is the classification of a single file candidate.
type Verdict int

const (
	// VerdictExcluded marks files that contribute nothing to the archive:
	// excluded names or extensions, binaries, and unreadable files.
	VerdictExcluded Verdict = iota
	// VerdictNotebook marks Jupyter notebooks, extracted cell by cell.
	VerdictNotebook
	// VerdictPlainText marks files read verbatim.
	VerdictPlainText
)

const (
	notebookExtension = ".ipynb"

	// sniffWindow is how many leading bytes are examined for the binary
	// heuristic.
	sniffWindow = 1024
)

// Classify decides how a file should be handled. The notebook extension
// wins over the exclusion lists; everything else falls through to a content
// sniff. Any read failure during sniffing resolves to VerdictExcluded
// rather than an error.
func Classify(path string, rules *Rules) Verdict {
	name := filepath.Base(path)
	if rules.ExcludesFilename(name) {
		return VerdictExcluded
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == notebookExtension {
		return VerdictNotebook
	}
	if rules.ExcludesExtension(ext) {
		return VerdictExcluded
	}

	binary, err := sniffBinary(path)
	if err != nil || binary {
		return VerdictExcluded
	}
	return VerdictPlainText
}

// sniffBinary reports whether a null byte occurs in the file's first
// sniffWindow bytes. Valid UTF-16 text carries null bytes and is therefore
// misclassified as binary; that is the heuristic's documented behavior.
func sniffBinary(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, sniffWindow)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}

	return bytes.IndexByte(buffer[:n], 0) >= 0, nil
}
