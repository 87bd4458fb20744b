// Package archive turns a directory tree into a single path-tagged text
// archive of its readable source content. The pipeline is strictly
// sequential: walk, classify, extract, write, in deterministic pre-order.
package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Run executes one archive pass over args.Root and reports the summary.
// Per-file failures are logged and counted as skipped; only failures on
// the output stream abort the run.
func Run(args Arguments, logger *zap.Logger) (Summary, error) {
	root, err := filepath.Abs(args.Root)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to resolve root %s: %w", args.Root, err)
	}

	output := args.Output
	if output == "" {
		output = DefaultOutputFilename
	}

	rules := DefaultRules()
	if args.RulesFile != "" {
		rules, err = LoadRulesFile(args.RulesFile)
		if err != nil {
			return Summary{}, err
		}
	}
	rules = rules.WithOutputFile(output)

	outputPath := filepath.Join(root, output)
	logger.Info("Starting archive run",
		zap.String("root", root),
		zap.String("output", outputPath))

	outFile, err := os.Create(outputPath)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	defer outFile.Close() // no-op after the explicit Close below

	writer := NewWriter(outFile)
	if err := writer.WriteHeader(); err != nil {
		return Summary{}, err
	}

	walkErr := Walk(root, rules, logger, func(dir string, filenames []string, pruned int) error {
		// Pruned subtrees are never visited; each counts once as skipped.
		writer.SkipN(pruned)

		for _, name := range filenames {
			// Excluded exact filenames (including the run's own output
			// file) are dropped before classification and not tallied.
			if rules.ExcludesFilename(name) {
				logger.Debug("Skipping excluded filename", zap.String("file", name))
				continue
			}

			path := filepath.Join(dir, name)
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				logger.Warn("Cannot determine relative path", zap.String("file", path), zap.Error(relErr))
				writer.Skip()
				continue
			}
			relPath := filepath.ToSlash(rel)

			var extractor Extractor
			switch Classify(path, rules) {
			case VerdictExcluded:
				logger.Debug("Skipping binary or excluded file", zap.String("file", relPath))
				writer.Skip()
				continue
			case VerdictNotebook:
				logger.Info("Processing notebook", zap.String("file", relPath))
				extractor = Notebook{}
			case VerdictPlainText:
				logger.Info("Processing text file", zap.String("file", relPath))
				extractor = PlainText{}
			}

			content, extractErr := extractor.Extract(path)
			if extractErr != nil {
				logger.Warn("Could not extract file content", zap.String("file", relPath), zap.Error(extractErr))
				writer.Skip()
				continue
			}

			if content == "" {
				logger.Debug("No content extracted", zap.String("file", relPath))
			}
			if err := writer.WriteFile(relPath, content); err != nil {
				return err
			}
		}
		return nil
	})
	if walkErr != nil {
		return Summary{}, walkErr
	}

	if err := writer.Flush(); err != nil {
		return Summary{}, err
	}
	if err := outFile.Close(); err != nil {
		return Summary{}, fmt.Errorf("failed to close output file %s: %w", outputPath, err)
	}

	summary := Summary{
		FilesProcessed: writer.FilesProcessed(),
		FilesSkipped:   writer.FilesSkipped(),
		OutputPath:     outputPath,
	}
	logger.Info("Archive run complete",
		zap.Int("filesProcessed", summary.FilesProcessed),
		zap.Int("filesSkipped", summary.FilesSkipped),
		zap.String("output", summary.OutputPath))
	return summary, nil
}
