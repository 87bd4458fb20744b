// File: pkg/archive/config.go
package archive

// Arguments holds the configuration options for one archive run.
type Arguments struct {
	Root      string // Root directory whose tree is archived.
	Output    string // Output filename, created inside Root. Defaults to DefaultOutputFilename.
	RulesFile string // Optional path to a YAML file overriding the built-in exclusion rules.
}

// Summary reports the outcome of a completed run.
type Summary struct {
	FilesProcessed int    // Files whose content made it into the archive.
	FilesSkipped   int    // Excluded, binary, unreadable, or empty entries.
	OutputPath     string // Absolute path of the written archive.
}
