package domain

// Config holds the project-level settings for a run. Everything has a
// default so the tool works in an Angular workspace with no config file.
type Config struct {
	// CachePath is the fingerprint store location, relative to the root.
	CachePath string
	// LintCommand is the lint tool invocation; selected files are appended.
	LintCommand []string
	// TestCommand is the test tool invocation.
	TestCommand []string
	// IncludeFlag is the per-spec inclusion flag, e.g. "--include".
	IncludeFlag string
	// Pairing is the source<->spec naming convention.
	Pairing Pairing
	// LintExtensions are the file extensions eligible for linting.
	LintExtensions []string
}

// DefaultConfig returns the settings used when no sift.yaml is present.
func DefaultConfig() Config {
	return Config{
		CachePath:   ".sift/cache.json",
		LintCommand: []string{"npx", "eslint", "--fix"},
		TestCommand: []string{
			"npx", "ng", "test",
			"--watch=false",
			"--code-coverage",
			"--browsers=ChromeHeadlessParallel",
		},
		IncludeFlag:    "--include",
		Pairing:        DefaultPairing(),
		LintExtensions: []string{".ts", ".js", ".html", ".scss", ".css"},
	}
}
