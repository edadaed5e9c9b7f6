// Package hints builds the short remediation lines appended to CLI error
// messages. Every hint renders as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-docmerge/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests environment variables that usually fix a
// headless Chrome launch failure.
func ForBrowserConnect() string {
	var parts []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use a custom Chrome")
	}
	parts = append(parts, "or skip PDF export with 'docmerge merge'")

	return formatHints(parts)
}

// ForTimeout suggests a longer export timeout.
func ForTimeout() string {
	return format("for large documents, raise --timeout")
}

// ForConfigNotFound suggests --config, or the user config location when it
// appears among the searched paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), ".config/docmerge") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory is appended when the output file cannot be written.
func ForOutputDirectory() string {
	return format("check the parent directory exists and is writable")
}

// ForStyleNotFound lists the built-in styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForDocsDir is appended when the content root is missing or unreadable.
func ForDocsDir(dir string) string {
	return format("run from the repository root or pass --docs (looked in " + dir + ")")
}

// ForDescriptor is appended when the navigation descriptor cannot be loaded.
func ForDescriptor(path string) string {
	return format("pass --descriptor with a JSON or YAML navigation file (tried " + path + ")")
}

// ForNoMatches is appended when no navigation entry resolved to a file.
func ForNoMatches() string {
	return format("entry URIs must match file paths under the docs directory; rerun with --verbose to see tried keys")
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return format(strings.Join(parts, "; "))
}
