// Where: internal/usecase/generate/collect.go
// What: Parameter collection from flags, environment, prompts and the descriptor.
// Why: Produce one validated Answers value before anything touches the disk.
package generate

import (
	"errors"
	"fmt"

	"github.com/poruru/apigen/internal/domain/answers"
	"github.com/poruru/apigen/internal/infra/descriptor"
	"github.com/poruru/apigen/internal/infra/interaction"
	"github.com/spf13/afero"
)

// ErrMissingValue reports a parameter with no value and no default in
// non-interactive mode.
var ErrMissingValue = errors.New("missing value")

// Options carries raw parameter values from flags or their environment
// variables. Empty strings mean "not supplied".
type Options struct {
	DeleteContent   string
	ProjectName     string
	KestrelHTTPPort string
	IISHTTPPort     string
	IISHTTPSPort    string
	DataProvider    string
}

// Collector fills Answers, asking the Prompter for anything Options lacks.
type Collector struct {
	Prompter    interaction.Prompter
	Interactive bool
}

type textField struct {
	flag     string
	title    string
	def      string
	supplied string
	validate func(string) error
	target   *string
}

var providerOptions = []interaction.SelectOption{
	{Label: "PostgreSQL (p)", Value: "p"},
	{Label: "MSSQL (m)", Value: "m"},
	{Label: "No database (n)", Value: "n"},
}

// Collect resolves every field in prompt order: deleteContent, projectName,
// kestrelHttpPort, iisHttpPort, iisHttpsPort, dataProvider. The project name
// is not asked for when skipProjectName is set.
func (c Collector) Collect(opts Options, skipProjectName bool) (answers.Answers, error) {
	var a answers.Answers

	deleteContent, err := c.collectDeleteContent(opts.DeleteContent)
	if err != nil {
		return answers.Answers{}, err
	}
	a.DeleteContent = deleteContent

	fields := []textField{
		{
			flag:     "--project-name",
			title:    `Name of the new project (PascalCasing, e.g. "MyProjectApi")`,
			supplied: opts.ProjectName,
			validate: answers.ValidateProjectName,
			target:   &a.ProjectName,
		},
		{
			flag:     "--kestrel-http-port",
			title:    "HTTP port for the kestrel server (the port assigned by AppConfig + 1)",
			supplied: opts.KestrelHTTPPort,
			validate: answers.ValidatePort,
			target:   &a.KestrelHTTPPort,
		},
		{
			flag:     "--iis-http-port",
			title:    "HTTP port for the IIS Express server (the port assigned by AppConfig)",
			supplied: opts.IISHTTPPort,
			validate: answers.ValidatePort,
			target:   &a.IISHTTPPort,
		},
		{
			flag:     "--iis-https-port",
			title:    "HTTPS port for the IIS Express server (443 followed by the last 2 digits of the AppConfig port)",
			supplied: opts.IISHTTPSPort,
			validate: answers.ValidatePort,
			target:   &a.IISHTTPSPort,
		},
	}
	if skipProjectName {
		fields = fields[1:]
	}
	for _, f := range fields {
		value, err := c.collectText(f)
		if err != nil {
			return answers.Answers{}, err
		}
		*f.target = value
	}

	code, err := c.collectProvider(opts.DataProvider)
	if err != nil {
		return answers.Answers{}, err
	}
	a.DataProviderCode = code
	a.DataProvider = answers.ParseProvider(code)
	return a, nil
}

func (c Collector) collectDeleteContent(supplied string) (bool, error) {
	def, _ := answers.ParseYesNo(answers.DefaultDeleteContent, true)
	if supplied != "" || !c.canPrompt() {
		value, err := answers.ParseYesNo(supplied, def)
		if err != nil {
			return false, fmt.Errorf("--delete-content: %w", err)
		}
		return value, nil
	}
	return c.Prompter.Confirm("Delete the contents of the root folder before generation (.git is preserved)?", def)
}

func (c Collector) collectText(f textField) (string, error) {
	if f.supplied != "" {
		return f.supplied, nil
	}
	if !c.canPrompt() {
		if f.def != "" {
			return f.def, nil
		}
		return "", fmt.Errorf("%w: %s is required when not running interactively", ErrMissingValue, f.flag)
	}
	return c.Prompter.Input(f.title, f.def, f.validate)
}

func (c Collector) collectProvider(supplied string) (string, error) {
	if supplied != "" {
		return supplied, nil
	}
	if !c.canPrompt() {
		return answers.DefaultDataProvider, nil
	}
	return c.Prompter.SelectValue("Entity Framework provider", providerOptions)
}

func (c Collector) canPrompt() bool {
	return c.Interactive && c.Prompter != nil
}

// ApplyDescriptor replaces the project name with the one recorded in the
// descriptor under root. Ports and provider stay as collected.
func ApplyDescriptor(fsys afero.Fs, root string, a answers.Answers) (answers.Answers, error) {
	desc, err := descriptor.Load(fsys, root)
	if err != nil {
		return answers.Answers{}, err
	}
	return a.WithProjectName(desc.ProjectName()), nil
}
