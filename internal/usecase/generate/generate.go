// Where: internal/usecase/generate/generate.go
// What: Generation workflow orchestration.
// Why: Keep stage order (collect, resolve, prepare, materialize) out of the CLI layer.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/poruru/apigen/internal/domain/answers"
	"github.com/poruru/apigen/internal/domain/identity"
	"github.com/poruru/apigen/internal/domain/provider"
	"github.com/poruru/apigen/internal/domain/template"
	"github.com/poruru/apigen/internal/infra/fileops"
	"github.com/poruru/apigen/internal/infra/interaction"
	"github.com/poruru/apigen/internal/infra/templatesrc"
	"github.com/poruru/apigen/internal/infra/ui"
	"github.com/poruru/apigen/internal/infra/update"
	"github.com/poruru/apigen/internal/meta"
	"github.com/spf13/afero"
)

var (
	errTemplatesNotConfigured = errors.New("template source is not configured")
	errTemplatesInsideRoot    = errors.New("template directory lies inside the root folder")
)

// Request captures the inputs required to run a generation.
type Request struct {
	RootFolder      string
	Descriptor      bool
	Options         Options
	Templates       string
	Jobs            int
	DryRun          bool
	Verbose         bool
	SkipUpdateCheck bool
	Interactive     bool
	Version         string
}

// Result reports what a run did.
type Result struct {
	Root     string
	Answers  answers.Answers
	Bundle   provider.Bundle
	Plan     template.Plan
	Removed  []string
	Stats    ApplyStats
	Aborted  bool
	Latest   string
	Template string
}

// UpdateChecker reports whether a newer release exists.
type UpdateChecker interface {
	Check(ctx context.Context, current string) (update.Result, error)
}

// Workflow executes the generation stages.
type Workflow struct {
	Fs            afero.Fs
	Templates     templatesrc.Opener
	Prompter      interaction.Prompter
	UpdateChecker UpdateChecker
	Identities    func() (identity.Set, error)
	UserInterface ui.UserInterface
}

// Run executes the generation workflow.
func (w Workflow) Run(ctx context.Context, req Request) (Result, error) {
	if w.Templates == nil {
		return Result{}, errTemplatesNotConfigured
	}
	if w.UserInterface == nil {
		w.UserInterface = ui.NewConsoleUI(io.Discard, false)
	}
	w.UserInterface.Banner(meta.DisplayName, req.Version)

	if latest, ok := w.newerRelease(ctx, req); ok {
		w.UserInterface.Warn(fmt.Sprintf("A newer version (%s) of %s is available, you are running %s.", latest, meta.AppName, req.Version))
		w.UserInterface.Info(fmt.Sprintf("Update with: go install %s/cmd/%s@latest", meta.ModulePath, meta.AppName))
		return Result{Aborted: true, Latest: latest}, nil
	}

	root, err := resolveRoot(req.RootFolder)
	if err != nil {
		return Result{}, err
	}

	collector := Collector{Prompter: w.Prompter, Interactive: req.Interactive}
	collected, err := collector.Collect(req.Options, req.Descriptor)
	if err != nil {
		return Result{}, err
	}
	if req.Descriptor {
		collected, err = ApplyDescriptor(w.Fs, root, collected)
		if err != nil {
			return Result{}, err
		}
	}
	if err := collected.Validate(); err != nil {
		return Result{}, err
	}

	bundle := provider.Resolve(collected.DataProviderCode, collected.ProjectName)
	ids, err := w.identities()
	if err != nil {
		return Result{}, err
	}

	tree, err := w.Templates.Open(ctx, req.Templates)
	if err != nil {
		return Result{}, err
	}
	files, err := tree.Files()
	if err != nil {
		return Result{}, err
	}
	plan := template.NewPlan(files, collected, bundle, ids)

	result := Result{
		Root:     root,
		Answers:  collected,
		Bundle:   bundle,
		Plan:     plan,
		Template: tree.Origin,
	}
	if req.DryRun {
		w.UserInterface.List("🗺️", "Plan", planLines(plan))
		w.printSummary(result, true)
		return result, nil
	}

	if collected.DeleteContent && tree.LocalDir != "" && fileops.IsWithin(root, tree.LocalDir) {
		return Result{}, fmt.Errorf("%w: %s", errTemplatesInsideRoot, tree.LocalDir)
	}
	removed, err := Prepare(w.Fs, root, collected.DeleteContent)
	result.Removed = removed
	if err != nil {
		return result, err
	}

	materializer := Materializer{Fs: w.Fs, Jobs: req.Jobs}
	if req.Verbose {
		materializer.OnFile = func(entry template.Entry, _ bool) {
			w.UserInterface.Info(fmt.Sprintf("%s => %s", entry.Source, entry.Destination))
		}
	}
	stats, err := materializer.Apply(ctx, tree, root, plan)
	result.Stats = stats
	if err != nil {
		return result, err
	}

	w.printSummary(result, false)
	w.UserInterface.Success(fmt.Sprintf("Project %s generated in %s", collected.ProjectName, root))
	return result, nil
}

// newerRelease is advisory: lookup failures never stop a run.
func (w Workflow) newerRelease(ctx context.Context, req Request) (string, bool) {
	if req.SkipUpdateCheck || w.UpdateChecker == nil {
		return "", false
	}
	res, err := w.UpdateChecker.Check(ctx, req.Version)
	if err != nil || !res.Available {
		return "", false
	}
	return res.Latest, true
}

func (w Workflow) identities() (identity.Set, error) {
	if w.Identities != nil {
		return w.Identities()
	}
	return identity.New()
}

func (w Workflow) printSummary(r Result, dryRun bool) {
	rows := []ui.KeyValue{
		{Key: "Project", Value: r.Answers.ProjectName},
		{Key: "Data provider", Value: r.Answers.DataProvider.Label()},
		{Key: "Root folder", Value: r.Root},
		{Key: "Templates", Value: r.Template},
		{Key: "Kestrel", Value: "http://localhost:" + r.Answers.KestrelHTTPPort},
		{Key: "IIS Express", Value: "http://localhost:" + r.Answers.IISHTTPPort},
		{Key: "IIS Express SSL", Value: r.Answers.IISHTTPSPort},
	}
	if dryRun {
		rows = append(rows,
			ui.KeyValue{Key: "Files planned", Value: len(r.Plan.Included())},
			ui.KeyValue{Key: "Files excluded", Value: len(r.Plan.ExcludedEntries())},
		)
		w.UserInterface.Block("📦", "Dry run", rows)
		return
	}
	rows = append(rows,
		ui.KeyValue{Key: "Entries removed", Value: len(r.Removed)},
		ui.KeyValue{Key: "Files written", Value: r.Stats.Written},
		ui.KeyValue{Key: "Files excluded", Value: len(r.Plan.ExcludedEntries())},
	)
	w.UserInterface.Block("📦", "Summary", rows)
}

func planLines(plan template.Plan) []string {
	lines := make([]string, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		if e.Excluded {
			lines = append(lines, fmt.Sprintf("%s (excluded: %s)", e.Source, e.ExcludedBy))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s => %s", e.Source, e.Destination))
	}
	return lines
}

func resolveRoot(root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root folder: %w", err)
	}
	return abs, nil
}
