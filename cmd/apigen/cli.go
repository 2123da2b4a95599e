// Where: cmd/apigen/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"context"
	"os"

	"github.com/poruru/apigen/internal/command"
	"github.com/poruru/apigen/internal/infra/config"
	"github.com/poruru/apigen/internal/infra/interaction"
	"github.com/poruru/apigen/internal/infra/templatesrc"
	"github.com/poruru/apigen/internal/infra/update"
	"github.com/poruru/apigen/internal/meta"
	"github.com/spf13/afero"
)

var userConfigPath = config.UserConfigPath

// buildDependencies constructs the runtime dependencies of the CLI: the OS
// filesystem, the template resolver, the huh prompter and the update checker.
func buildDependencies(ctx context.Context) command.Dependencies {
	checker := update.Checker{Module: meta.ModulePath}
	if path, err := userConfigPath(); err == nil {
		checker.Store = config.UpdateCheckStore{Path: path}
	}
	return command.Dependencies{
		Context:       ctx,
		Out:           os.Stdout,
		In:            os.Stdin,
		Prompter:      interaction.HuhPrompter{},
		Fs:            afero.NewOsFs(),
		Templates:     templatesrc.NewResolver(),
		UpdateChecker: checker,
	}
}
