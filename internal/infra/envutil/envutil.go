// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru/apigen/internal/meta"
)

// HostEnvKey constructs a host-level environment variable name
// by combining the tool prefix with the given suffix.
// Example: HostEnvKey("S3_ENDPOINT") returns "APIGEN_S3_ENDPOINT".
func HostEnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + strings.ToUpper(strings.TrimSpace(suffix))
}

// GetHostEnv retrieves a host-level environment variable with surrounding
// whitespace removed.
// Example: GetHostEnv("CONFIG_DIR") returns the value of APIGEN_CONFIG_DIR.
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}
