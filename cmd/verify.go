package cmd

import (
	"fmt"
	"os"
	"strings"

	"srcpack/pkg/logging"
	"srcpack/pkg/tushare"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// tokenEnvKeys are the environment variables checked by verify-tokens.
var tokenEnvKeys = []string{"TUSHARE_TOKEN", "TUSHARE_TOKEN_2"}

// verifyCmd is a standalone utility; it shares no state with the archive
// pipeline.
var verifyCmd = &cobra.Command{
	Use:   "verify-tokens",
	Short: "Verify TuShare API tokens via the user quota endpoint",
	Long: `verify-tokens reads the TUSHARE_TOKEN and TUSHARE_TOKEN_2 environment
variables (loading a local .env file first, if one exists), calls the
TuShare user quota endpoint for each, and prints a pass/fail report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Convenience load only; a missing .env file is not an error.
		if err := godotenv.Load(); err != nil {
			logging.Logger.Debug("No .env file loaded", zap.Error(err))
		}

		client := tushare.NewClient("")
		pass := color.New(color.FgGreen, color.Bold)
		fail := color.New(color.FgRed, color.Bold)

		anyValid := false
		for _, key := range tokenEnvKeys {
			fmt.Println(strings.Repeat("-", 40))
			fmt.Printf("Environment variable: %s\n", key)

			token := os.Getenv(key)
			if token == "" {
				fail.Printf("FAIL: %s is not set\n", key)
				continue
			}

			records, err := client.User(cmd.Context(), token)
			if err != nil {
				fail.Printf("FAIL: quota lookup failed: %v\n", err)
				continue
			}

			anyValid = true
			pass.Println("PASS")
			if len(records) == 0 {
				fmt.Println("Quota records: [] (no expiring quota rows returned)")
				continue
			}

			fmt.Printf("User ID: %s\n", records[0].UserID())
			for _, record := range records {
				fmt.Printf("Quota record: %s\n", record)
			}
		}

		if !anyValid {
			return fmt.Errorf("no valid TuShare token detected")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(verifyCmd)
}
