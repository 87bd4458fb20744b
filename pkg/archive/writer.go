// File: pkg/archive/writer.go
package archive

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// archiveHeader is written once before any file blocks.
const archiveHeader = "--- Project Source Code Archive ---\n\n" +
	"This file contains the concatenated source code of the project, " +
	"with each file wrapped in tags indicating its relative path.\n\n"

// Writer appends path-tagged content blocks to the archive stream and
// keeps the processed/skipped tallies for the final summary. It is not
// safe for concurrent use; the pipeline is strictly sequential.
type Writer struct {
	w              *bufio.Writer
	filesProcessed int
	filesSkipped   int
}

// NewWriter wraps the output stream in a buffered archive writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader emits the fixed archive preamble.
func (aw *Writer) WriteHeader() error {
	if _, err := aw.w.WriteString(archiveHeader); err != nil {
		return fmt.Errorf("failed to write archive header: %w", err)
	}
	return nil
}

// WriteFile appends one tagged block for relPath. Content that trims to
// nothing counts as skipped and produces no output. relPath must already
// use forward slashes.
func (aw *Writer) WriteFile(relPath, content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		aw.filesSkipped++
		return nil
	}

	if _, err := fmt.Fprintf(aw.w, "<%s>\n%s\n</%s>\n\n", relPath, trimmed, relPath); err != nil {
		return fmt.Errorf("failed to write block for %s: %w", relPath, err)
	}
	aw.filesProcessed++
	return nil
}

// Skip records one entry that contributes no content.
func (aw *Writer) Skip() {
	aw.filesSkipped++
}

// SkipN records n entries that contribute no content.
func (aw *Writer) SkipN(n int) {
	aw.filesSkipped += n
}

// Flush drains buffered output to the underlying stream.
func (aw *Writer) Flush() error {
	if err := aw.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush archive output: %w", err)
	}
	return nil
}

// FilesProcessed returns the number of archived files.
func (aw *Writer) FilesProcessed() int {
	return aw.filesProcessed
}

// FilesSkipped returns the number of entries that produced no output.
func (aw *Writer) FilesSkipped() int {
	return aw.filesSkipped
}
