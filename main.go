package main

import (
	"os"
	"strings"

	"srcpack/cmd"
	"srcpack/pkg/logging"

	"golang.org/x/term"
)

func main() {
	err := cmd.Execute()

	// Syncing stderr fails with "invalid argument" on some platforms when it
	// is neither a terminal nor a regular file, so only attempt it when it
	// can succeed.
	if logging.Logger != nil {
		if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
			if syncErr := logging.Logger.Sync(); syncErr != nil {
				if !strings.Contains(strings.ToLower(syncErr.Error()), "invalid argument") {
					os.Stderr.WriteString("logger sync failed: " + syncErr.Error() + "\n")
				}
			}
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
