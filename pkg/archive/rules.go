package archive

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultOutputFilename is the archive filename used when none is given.
const DefaultOutputFilename = "full_project_source.txt"

// Rules is the immutable set of exclusion predicates applied during a run.
// Build one with DefaultRules or LoadRulesFile; it is never mutated after
// construction, so a single value can safely back a whole run.
type Rules struct {
	dirsAnywhere map[string]struct{} // directory names excluded at any depth
	dirsRootOnly map[string]struct{} // directory names excluded only as direct children of the root
	dirSuffixes  []string            // directory-name suffixes excluded at any depth
	extensions   map[string]struct{} // lowercased file extensions excluded
	filenames    map[string]struct{} // exact filenames excluded
}

var (
	defaultDirsAnywhere = []string{
		".git", "__pycache__", ".pytest_cache", "cache", "outputs",
		".vscode", ".idea", "venv", ".venv", "env", "build", "dist",
		"renv", "node_modules",
	}

	// User-specific data, not source code. Nested directories with the
	// same name (e.g. src/app/data) are kept.
	defaultDirsRootOnly = []string{"data"}

	defaultDirSuffixes = []string{".egg-info"}

	defaultExtensions = []string{
		".pyc", ".pyo", ".so", ".dll", ".exe",
		".png", ".jpg", ".jpeg", ".gif", ".ico", ".svg",
		".parquet", ".arrow", ".feather", ".csv",
		".zip", ".gz", ".tar", ".rar", ".7z",
		".db", ".sqlite3", ".pdf", ".docx", ".xlsx",
		".swp", ".swo",
	}

	defaultFilenames = []string{".DS_Store", "Thumbs.db", "celerybeat-schedule", ".env"}
)

// rulesFile mirrors the YAML override format. A present key replaces the
// corresponding built-in list wholesale; absent keys keep the defaults.
type rulesFile struct {
	ExcludeDirs        []string `yaml:"exclude_dirs"`
	ExcludeRootDirs    []string `yaml:"exclude_root_dirs"`
	ExcludeDirSuffixes []string `yaml:"exclude_dir_suffixes"`
	ExcludeExtensions  []string `yaml:"exclude_extensions"`
	ExcludeFiles       []string `yaml:"exclude_files"`
}

// DefaultRules returns the built-in exclusion rules.
func DefaultRules() *Rules {
	return newRules(defaultDirsAnywhere, defaultDirsRootOnly, defaultDirSuffixes, defaultExtensions, defaultFilenames)
}

// LoadRulesFile reads a YAML rules file and returns the built-in rules with
// any present list replaced by the file's version.
func LoadRulesFile(path string) (*Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var rf rulesFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	dirsAnywhere := defaultDirsAnywhere
	if rf.ExcludeDirs != nil {
		dirsAnywhere = rf.ExcludeDirs
	}
	dirsRootOnly := defaultDirsRootOnly
	if rf.ExcludeRootDirs != nil {
		dirsRootOnly = rf.ExcludeRootDirs
	}
	dirSuffixes := defaultDirSuffixes
	if rf.ExcludeDirSuffixes != nil {
		dirSuffixes = rf.ExcludeDirSuffixes
	}
	extensions := defaultExtensions
	if rf.ExcludeExtensions != nil {
		extensions = rf.ExcludeExtensions
	}
	filenames := defaultFilenames
	if rf.ExcludeFiles != nil {
		filenames = rf.ExcludeFiles
	}

	return newRules(dirsAnywhere, dirsRootOnly, dirSuffixes, extensions, filenames), nil
}

func newRules(dirsAnywhere, dirsRootOnly, dirSuffixes, extensions, filenames []string) *Rules {
	return &Rules{
		dirsAnywhere: toSet(dirsAnywhere),
		dirsRootOnly: toSet(dirsRootOnly),
		dirSuffixes:  append([]string(nil), dirSuffixes...),
		extensions:   toLowerSet(extensions),
		filenames:    toSet(filenames),
	}
}

// WithOutputFile returns a copy of the rules with name added to the
// excluded filenames, so a previous run's archive is never re-ingested.
func (r *Rules) WithOutputFile(name string) *Rules {
	filenames := make(map[string]struct{}, len(r.filenames)+1)
	for k := range r.filenames {
		filenames[k] = struct{}{}
	}
	filenames[name] = struct{}{}

	return &Rules{
		dirsAnywhere: r.dirsAnywhere,
		dirsRootOnly: r.dirsRootOnly,
		dirSuffixes:  r.dirSuffixes,
		extensions:   r.extensions,
		filenames:    filenames,
	}
}

// ExcludesDir reports whether a directory with the given name must be
// pruned. atRoot indicates the directory is a direct child of the tree
// root; the root-only names fire only then.
func (r *Rules) ExcludesDir(name string, atRoot bool) bool {
	if _, ok := r.dirsAnywhere[name]; ok {
		return true
	}
	if atRoot {
		if _, ok := r.dirsRootOnly[name]; ok {
			return true
		}
	}
	for _, suffix := range r.dirSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// ExcludesFilename reports whether the exact filename is excluded.
func (r *Rules) ExcludesFilename(name string) bool {
	_, ok := r.filenames[name]
	return ok
}

// ExcludesExtension reports whether the extension (with leading dot,
// case-insensitive) is excluded.
func (r *Rules) ExcludesExtension(ext string) bool {
	_, ok := r.extensions[strings.ToLower(ext)]
	return ok
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func toLowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = struct{}{}
	}
	return set
}
