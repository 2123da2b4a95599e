// Where: internal/command/new_entry.go
// What: New command entry and workflow execution.
// Why: Translate flags into a generation request and report the outcome.
package command

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/poruru/apigen/internal/infra/interaction"
	"github.com/poruru/apigen/internal/infra/templatesrc"
	"github.com/poruru/apigen/internal/infra/ui"
	"github.com/poruru/apigen/internal/usecase/generate"
	"github.com/poruru/apigen/internal/version"
	"github.com/spf13/afero"
)

// runNew executes the 'new' command.
func runNew(cli CLI, deps Dependencies, out io.Writer) int {
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}

	workflow := generate.Workflow{
		Fs:            deps.Fs,
		Templates:     deps.Templates,
		Prompter:      deps.Prompter,
		UpdateChecker: deps.UpdateChecker,
		UserInterface: ui.NewConsoleUI(out, resolveEmojiEnabled(out, cli.NoEmoji)),
	}
	if workflow.Fs == nil {
		workflow.Fs = afero.NewOsFs()
	}
	if workflow.Templates == nil {
		workflow.Templates = templatesrc.NewResolver()
	}
	if workflow.Prompter == nil {
		workflow.Prompter = interaction.HuhPrompter{}
	}

	req := newRequest(cli.New)
	req.Interactive = resolveInteractive(deps)

	if _, err := workflow.Run(ctx, req); err != nil {
		return exitWithError(out, err)
	}
	return 0
}

func newRequest(flags NewCmd) generate.Request {
	return generate.Request{
		RootFolder: flags.RootFolder,
		Descriptor: flags.Descriptor,
		Options: generate.Options{
			DeleteContent:   strings.TrimSpace(flags.DeleteContent),
			ProjectName:     strings.TrimSpace(flags.ProjectName),
			KestrelHTTPPort: strings.TrimSpace(flags.KestrelHTTPPort),
			IISHTTPPort:     strings.TrimSpace(flags.IISHTTPPort),
			IISHTTPSPort:    strings.TrimSpace(flags.IISHTTPSPort),
			DataProvider:    strings.TrimSpace(flags.DataProvider),
		},
		Templates:       flags.Templates,
		Jobs:            flags.Jobs,
		DryRun:          flags.DryRun,
		Verbose:         flags.Verbose,
		SkipUpdateCheck: flags.SkipUpdateCheck,
		Version:         version.GetVersion(),
	}
}

func resolveInteractive(deps Dependencies) bool {
	if deps.Interactive != nil {
		return deps.Interactive()
	}
	in := deps.In
	if in == nil {
		in = os.Stdin
	}
	return interaction.IsTerminal(in)
}

func resolveEmojiEnabled(out io.Writer, noEmoji bool) bool {
	if noEmoji {
		return false
	}
	if strings.TrimSpace(os.Getenv("NO_EMOJI")) != "" {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "dumb" {
		return false
	}
	if file, ok := out.(*os.File); ok {
		return interaction.IsTerminal(file)
	}
	return false
}
