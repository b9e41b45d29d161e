// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/fileutil"
)

// IsInContainer detects a Docker container via the /.dockerenv marker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests browser environment variables, with the
// sandbox hint only in CI or containers.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the per-invoice timeout.
func ForTimeout() string {
	return format("for invoices with large images, use --timeout")
}

// ForConfigNotFound suggests --config, or creating the user config file.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(slashed(p), ".config/go-invoice2pdf") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the built-in styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForMissingColumns points at header mapping in the config file.
func ForMissingColumns(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	return format("map your headers under \"columns:\" in the config file (missing: " + strings.Join(missing, ", ") + ")")
}

// ForUnsupportedFormat names the accepted input formats.
func ForUnsupportedFormat() string {
	return format("re-save the workbook as .xlsx (legacy .xls is not read) or export it as .csv")
}

// ForNoDocuments points at the per-row messages printed above the error.
func ForNoDocuments() string {
	return format("every row failed; see the \"Skipped row\" lines above")
}

// slashed normalises Windows separators so path checks work on every OS.
func slashed(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
