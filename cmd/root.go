package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"srcpack/pkg/archive"
	"srcpack/pkg/logging"
	"srcpack/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagRoot     string
	flagOutput   string
	flagRules    string
	flagLogLevel string
)

// RootCmd is the base command; invoked without a subcommand it runs the
// archive pass.
var RootCmd = &cobra.Command{
	Use:   "srcpack",
	Short: "srcpack archives a project's readable source into one text file",
	Long: `srcpack walks a project tree, filters out build artifacts, caches, and
binary files, extracts readable content (including Jupyter notebook cells),
and writes everything into a single path-tagged text archive.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Setup(flagLogLevel, "srcpack", version.Get().Version)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		root := flagRoot
		if root == "" {
			root = defaultRoot()
		}

		summary, err := archive.Run(archive.Arguments{
			Root:      root,
			Output:    flagOutput,
			RulesFile: flagRules,
		}, logging.Logger)
		if err != nil {
			logging.Logger.Error("Archive run failed", zap.Error(err))
			return err
		}

		fmt.Printf("Successfully processed %d files.\n", summary.FilesProcessed)
		fmt.Printf("Skipped %d binary, excluded, or unreadable files.\n", summary.FilesSkipped)
		fmt.Printf("Combined output saved to: %s\n", summary.OutputPath)
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log verbosity (debug, info, warn, error)")
	RootCmd.Flags().StringVar(&flagRoot, "root", "", "Root directory to archive (default: parent of the srcpack binary)")
	RootCmd.Flags().StringVar(&flagOutput, "output", archive.DefaultOutputFilename, "Name of the output file, created inside the root")
	RootCmd.Flags().StringVar(&flagRules, "rules", "", "YAML file overriding the built-in exclusion rules")
}

// defaultRoot assumes the binary is installed in a tools directory inside
// the project, so the project root is that directory's parent.
func defaultRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(filepath.Dir(exe))
}
