package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runArchive(t *testing.T, root string) (Summary, string) {
	t.Helper()
	summary, err := Run(Arguments{Root: root}, zap.NewNop())
	require.NoError(t, err)

	raw, err := os.ReadFile(summary.OutputPath)
	require.NoError(t, err)
	return summary, string(raw)
}

func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "b.txt"), "hello")
	writeFile(t, filepath.Join(root, ".git", "ignored.txt"), "secret")
	writeFile(t, filepath.Join(root, "data", "x.txt"), "data")

	summary, output := runArchive(t, root)

	assert.Contains(t, output, "<a/b.txt>\nhello\n</a/b.txt>\n\n")
	assert.NotContains(t, output, "secret")
	assert.NotContains(t, output, "data/x.txt")
	assert.Equal(t, 1, summary.FilesProcessed)
	assert.GreaterOrEqual(t, summary.FilesSkipped, 2)
}

func TestRunOutputStartsWithHeader(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main")

	_, output := runArchive(t, root)

	assert.True(t, len(output) > len(archiveHeader))
	assert.Equal(t, archiveHeader, output[:len(archiveHeader)])
}

func TestRunIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "two.txt"), "2")
	writeFile(t, filepath.Join(root, "a", "one.txt"), "1")
	writeFile(t, filepath.Join(root, "a", "nested", "three.txt"), "3")

	_, first := runArchive(t, root)
	_, second := runArchive(t, root)

	assert.Equal(t, first, second, "reruns over an unchanged tree must be byte-identical")
}

func TestRunNeverIngestsItsOwnOutput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.py"), "print('hi')")

	_, first := runArchive(t, root)
	summary, second := runArchive(t, root)

	assert.Equal(t, first, second)
	assert.NotContains(t, second, "<"+DefaultOutputFilename+">")
	assert.Equal(t, 1, summary.FilesProcessed)
}

func TestRunSkipsEmptyAndWhitespaceFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "empty.txt"), "")
	writeFile(t, filepath.Join(root, "blank.txt"), "  \n\t\n")
	writeFile(t, filepath.Join(root, "real.txt"), "content")

	summary, output := runArchive(t, root)

	assert.NotContains(t, output, "<empty.txt>")
	assert.NotContains(t, output, "<blank.txt>")
	assert.Contains(t, output, "<real.txt>\ncontent\n</real.txt>")
	assert.Equal(t, 1, summary.FilesProcessed)
	assert.Equal(t, 2, summary.FilesSkipped)
}

func TestRunExcludesBinaryByContentSniff(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sneaky.txt"), "looks like text \x00 but is not")

	summary, output := runArchive(t, root)

	assert.NotContains(t, output, "sneaky")
	assert.Equal(t, 0, summary.FilesProcessed)
	assert.Equal(t, 1, summary.FilesSkipped)
}

func TestRunArchivesNotebookCells(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "nb", "analysis.ipynb"), `{
		"cells": [
			{"cell_type": "code", "source": ["import os\n", "print(os.getcwd())"]},
			{"cell_type": "markdown", "source": "## Notes"}
		]
	}`)

	summary, output := runArchive(t, root)

	assert.Equal(t, 1, summary.FilesProcessed)
	assert.Contains(t, output, "<nb/analysis.ipynb>")
	assert.Contains(t, output, "--- Code Cell 1 ---\nimport os\nprint(os.getcwd())")
	assert.Contains(t, output, "--- Markdown Cell 2 ---\n## Notes")
}

func TestRunContinuesPastMalformedNotebook(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad.ipynb"), "{not a notebook")
	writeFile(t, filepath.Join(root, "good.txt"), "still here")

	summary, output := runArchive(t, root)

	assert.NotContains(t, output, "<bad.ipynb>")
	assert.Contains(t, output, "<good.txt>\nstill here\n</good.txt>")
	assert.Equal(t, 1, summary.FilesProcessed)
	assert.Equal(t, 1, summary.FilesSkipped)
}

func TestRunCustomOutputName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "x.txt"), "x")

	summary, err := Run(Arguments{Root: root, Output: "bundle.txt"}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "bundle.txt"), summary.OutputPath)
	_, statErr := os.Stat(summary.OutputPath)
	assert.NoError(t, statErr)
}

func TestRunWithRulesFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "generated", "gen.txt"), "machine made")
	writeFile(t, filepath.Join(root, "src", "app.txt"), "hand made")

	rulesPath := filepath.Join(t.TempDir(), "rules.yaml")
	writeFile(t, rulesPath, "exclude_dirs:\n  - generated\n")

	summary, err := Run(Arguments{Root: root, RulesFile: rulesPath}, zap.NewNop())
	require.NoError(t, err)

	raw, err := os.ReadFile(summary.OutputPath)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "machine made")
	assert.Contains(t, string(raw), "hand made")
}

func TestRunFatalOnUnwritableOutput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "x.txt"), "x")

	// The output name collides with an existing directory, so the stream
	// cannot be opened.
	require.NoError(t, os.Mkdir(filepath.Join(root, "taken"), 0o755))

	_, err := Run(Arguments{Root: root, Output: "taken"}, zap.NewNop())
	assert.Error(t, err)
}
