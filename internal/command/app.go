// Where: internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/poruru/apigen/internal/infra/interaction"
	"github.com/poruru/apigen/internal/infra/templatesrc"
	"github.com/poruru/apigen/internal/usecase/generate"
	"github.com/poruru/apigen/internal/version"
	"github.com/spf13/afero"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Nil fields fall back to the production implementations.
type Dependencies struct {
	Context   context.Context
	Out       io.Writer
	In        *os.File
	Prompter  interaction.Prompter
	Fs        afero.Fs
	Templates templatesrc.Opener
	// UpdateChecker is optional; nil skips the release check.
	UpdateChecker generate.UpdateChecker
	// Interactive overrides terminal detection on In.
	Interactive func() bool
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	EnvFile string     `name:"env-file" help:"Load environment variables from this file before reading flags"`
	NoEmoji bool       `name:"no-emoji" env:"APIGEN_NO_EMOJI" help:"Disable emoji output"`
	New     NewCmd     `cmd:"" default:"withargs" help:"Generate an ASP.NET Core API project (default command)"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type (
	// NewCmd defines the generation flags. Every parameter may also come from
	// its APIGEN_* environment variable.
	NewCmd struct {
		RootFolder      string `name:"root-folder" short:"r" env:"APIGEN_ROOT_FOLDER" help:"Destination folder (default: current directory)"`
		Descriptor      bool   `name:"descriptor" env:"APIGEN_DESCRIPTOR" help:"Read the project name from <root-folder>/.deliverable.json"`
		DeleteContent   string `name:"delete-content" env:"APIGEN_DELETE_CONTENT" placeholder:"y|n" help:"Clear the root folder before generation, keeping .git (default: y)"`
		ProjectName     string `name:"project-name" short:"n" env:"APIGEN_PROJECT_NAME" help:"Project name in PascalCase"`
		KestrelHTTPPort string `name:"kestrel-http-port" env:"APIGEN_KESTREL_HTTP_PORT" help:"HTTP port for the kestrel server"`
		IISHTTPPort     string `name:"iis-http-port" env:"APIGEN_IIS_HTTP_PORT" help:"HTTP port for IIS Express"`
		IISHTTPSPort    string `name:"iis-https-port" env:"APIGEN_IIS_HTTPS_PORT" help:"HTTPS port for IIS Express"`
		DataProvider    string `name:"data-provider" short:"d" env:"APIGEN_DATA_PROVIDER" placeholder:"p|m|n" help:"Entity Framework provider: p (PostgreSQL), m (MSSQL), anything else for none (default: p)"`
		Templates       string `name:"templates" short:"t" env:"APIGEN_TEMPLATES" help:"Template source: a directory or s3://bucket/prefix (default: built-in)"`
		Jobs            int    `name:"jobs" short:"j" help:"Parallel file writes (default: number of CPUs)"`
		DryRun          bool   `name:"dry-run" help:"Print the plan without touching the root folder"`
		SkipUpdateCheck bool   `name:"skip-update-check" env:"APIGEN_SKIP_UPDATE_CHECK" help:"Do not look for a newer release"`
		Verbose         bool   `short:"v" help:"List every generated file"`
	}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It loads the env file, parses the arguments and dispatches to the
// requested handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	ui := legacyUI(out)

	// Env-bound flags must see the file, so it is loaded before parsing.
	if path := envFileArg(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			ui.Warn(fmt.Sprintf("Warning: failed to load env file %s: %v", path, err))
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			ui.Warn(fmt.Sprintf("Warning: failed to load .env: %v", err))
		}
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(cliName()),
		kong.Description("Scaffold an ASP.NET Core API project from the dgp-api-aspnetcore templates."),
		kong.Writers(out, out),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(err, out)
	}
	if ctx == nil || isHelpRequest(args) {
		return 0
	}

	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps, out); handled {
		return exitCode
	}

	ui.Warn("unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"new":     runNew,
		"version": func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(cli, deps, out), true
	}

	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	legacyUI(out).Info(version.GetVersion())
	return 0
}

// envFileArg returns the value of --env-file, accepting both
// "--env-file path" and "--env-file=path".
func envFileArg(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			return ""
		}
		if value, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return strings.TrimSpace(value)
		}
		if arg == "--env-file" && i+1 < len(args) {
			return strings.TrimSpace(args[i+1])
		}
	}
	return ""
}

func isHelpRequest(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(err error, out io.Writer) int {
	msg := err.Error()
	if strings.Contains(msg, "expected string value") || strings.Contains(msg, "expected a value") {
		ui := legacyUI(out)
		ui.Warn(fmt.Sprintf("✗ %v", err))
		ui.Info(fmt.Sprintf("Omit the flag to be prompted for the value, or see: %s --help", cliName()))
		return 1
	}
	return exitWithError(out, err)
}
