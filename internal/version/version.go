// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Provide build-time version information to the CLI and the update check.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version is overridden at link time (-ldflags "-X .../version.Version=v1.2.3").
var Version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the version information derived from build info.
// It returns "dev" if build info is not available.
// Otherwise, it returns the release version when known, or the VCS revision,
// optionally appended with "(dirty)" if the tree was modified.
func GetVersion() string {
	if release := Release(); release != "" {
		return release
	}

	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			// Shorten revision to 7 chars if possible
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			if setting.Value == "true" {
				modified = true
			}
		}
	}

	if revision == "" {
		return "dev"
	}

	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}

// Release returns the semantic release version of the binary, or "" for
// development builds. A linker-provided Version wins over module build info,
// which is only populated for binaries installed with `go install module@version`.
func Release() string {
	if v := strings.TrimSpace(Version); v != "" {
		return v
	}
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	v := strings.TrimSpace(info.Main.Version)
	if v == "" || v == "(devel)" {
		return ""
	}
	return v
}
