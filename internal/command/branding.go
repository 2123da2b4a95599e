// Where: internal/command/branding.go
// What: Brand-aware CLI naming.
// Why: Keep user-facing command names consistent when the binary is renamed.
package command

import (
	"strings"

	"github.com/poruru/apigen/internal/infra/envutil"
	"github.com/poruru/apigen/internal/meta"
)

func cliName() string {
	name := envutil.GetHostEnv("CLI_CMD")
	if name == "" {
		name = strings.TrimSpace(meta.Slug)
	}
	if name == "" {
		name = "apigen"
	}
	return name
}
