// Where: internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface usage for plain command output.
package command

import (
	"io"

	"github.com/poruru/apigen/internal/infra/ui"
)

func legacyUI(out io.Writer) ui.UserInterface {
	return ui.NewPlainUI(out)
}
