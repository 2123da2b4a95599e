// Where: internal/command/app_test.go
// What: Tests for CLI run behavior.
// Why: Ensure command routing and flag/env plumbing remain stable.
package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poruru/apigen/internal/infra/update"
)

type stubUpdateChecker struct {
	result update.Result
}

func (s stubUpdateChecker) Check(context.Context, string) (update.Result, error) {
	return s.result, nil
}

func nonInteractiveDeps(out *bytes.Buffer) Dependencies {
	return Dependencies{
		Out:         out,
		Interactive: func() bool { return false },
	}
}

func generationArgs(root string) []string {
	return []string{
		"--root-folder", root,
		"--project-name", "Acme",
		"--kestrel-http-port", "5001",
		"--iis-http-port", "5000",
		"--iis-https-port", "5443",
		"--data-provider", "p",
		"--skip-update-check",
		"--no-emoji",
	}
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	if code := Run([]string{"version"}, Dependencies{Out: &out}); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Fatal("version output is empty")
	}
}

func TestRunGeneratesWithDefaultCommand(t *testing.T) {
	root := t.TempDir()
	var out bytes.Buffer
	code := Run(generationArgs(root), nonInteractiveDeps(&out))
	if code != 0 {
		t.Fatalf("exit code = %d\n%s", code, out.String())
	}
	for _, rel := range []string{"Acme.sln", ".gitignore", filepath.Join("src", "Acme", "Startup", "Startup.cs")} {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			t.Fatalf("%s missing: %v", rel, err)
		}
	}
	startup, err := os.ReadFile(filepath.Join(root, "src", "Acme", "Startup", "Startup.cs"))
	if err != nil {
		t.Fatalf("read Startup.cs: %v", err)
	}
	if !strings.Contains(string(startup), "UseNpgsql") {
		t.Fatalf("Startup.cs not wired for PostgreSQL")
	}
	if !strings.Contains(out.String(), "Summary") {
		t.Fatalf("summary missing from output:\n%s", out.String())
	}
}

func TestRunGeneratesWithExplicitCommand(t *testing.T) {
	root := t.TempDir()
	var out bytes.Buffer
	args := append([]string{"new"}, generationArgs(root)...)
	if code := Run(args, nonInteractiveDeps(&out)); code != 0 {
		t.Fatalf("exit code = %d\n%s", code, out.String())
	}
	if _, err := os.Stat(filepath.Join(root, "Acme.sln")); err != nil {
		t.Fatalf("solution missing: %v", err)
	}
}

func TestRunPreservesGitDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ".git", "config"), []byte("[core]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "app.txt"), []byte("stale"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out bytes.Buffer
	args := append(generationArgs(root), "--delete-content", "y")
	if code := Run(args, nonInteractiveDeps(&out)); code != 0 {
		t.Fatalf("exit code = %d\n%s", code, out.String())
	}
	if _, err := os.Stat(filepath.Join(root, ".git", "config")); err != nil {
		t.Fatalf(".git/config removed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "app.txt")); !os.IsNotExist(err) {
		t.Fatalf("app.txt survived: %v", err)
	}
}

func TestRunMissingValueFails(t *testing.T) {
	root := t.TempDir()
	var out bytes.Buffer
	args := []string{"--root-folder", root, "--project-name", "Acme", "--skip-update-check"}
	if code := Run(args, nonInteractiveDeps(&out)); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out.String(), "✗ missing value: --kestrel-http-port") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("files written after configuration error: %v", entries)
	}
}

func TestRunUpdateAvailableExitsCleanly(t *testing.T) {
	root := t.TempDir()
	var out bytes.Buffer
	deps := nonInteractiveDeps(&out)
	deps.UpdateChecker = stubUpdateChecker{result: update.Result{Latest: "v9.0.0", Available: true}}
	args := generationArgs(root)[:len(generationArgs(root))-2]
	if code := Run(args, deps); code != 0 {
		t.Fatalf("exit code = %d\n%s", code, out.String())
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("files written despite pending update: %v", entries)
	}
	if !strings.Contains(out.String(), "v9.0.0") {
		t.Fatalf("update notice missing:\n%s", out.String())
	}
}

func TestRunEnvFileFeedsFlags(t *testing.T) {
	root := t.TempDir()
	envFile := filepath.Join(t.TempDir(), "generate.env")
	values := map[string]string{
		"APIGEN_PROJECT_NAME":      "Billing",
		"APIGEN_KESTREL_HTTP_PORT": "6001",
		"APIGEN_IIS_HTTP_PORT":     "6000",
		"APIGEN_IIS_HTTPS_PORT":    "44301",
		"APIGEN_DATA_PROVIDER":     "m",
	}
	var content strings.Builder
	for key, value := range values {
		content.WriteString(key + "=" + value + "\n")
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}
	if err := os.WriteFile(envFile, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	var out bytes.Buffer
	args := []string{"--env-file", envFile, "--root-folder", root, "--skip-update-check"}
	if code := Run(args, nonInteractiveDeps(&out)); code != 0 {
		t.Fatalf("exit code = %d\n%s", code, out.String())
	}
	launch, err := os.ReadFile(filepath.Join(root, "src", "Billing", "Properties", "launchSettings.json"))
	if err != nil {
		t.Fatalf("read launchSettings: %v", err)
	}
	if !strings.Contains(string(launch), "http://localhost:6001") || !strings.Contains(string(launch), `"sslPort": 44301`) {
		t.Fatalf("env values not applied:\n%s", launch)
	}
}

func TestRunUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	if code := Run([]string{"--definitely-not-a-flag"}, nonInteractiveDeps(&out)); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out.String(), "✗") {
		t.Fatalf("error not reported:\n%s", out.String())
	}
}

func TestEnvFileArg(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"--env-file", "a.env"}, want: "a.env"},
		{args: []string{"new", "--env-file=b.env", "-v"}, want: "b.env"},
		{args: []string{"--env-file"}, want: ""},
		{args: []string{"--", "--env-file", "c.env"}, want: ""},
		{args: nil, want: ""},
	}
	for _, tc := range tests {
		if got := envFileArg(tc.args); got != tc.want {
			t.Fatalf("envFileArg(%v) = %q, want %q", tc.args, got, tc.want)
		}
	}
}

func TestExitWithError(t *testing.T) {
	var buf bytes.Buffer
	code := exitWithError(&buf, os.ErrPermission)
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if got, want := buf.String(), "✗ permission denied\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCliNameUsesOverride(t *testing.T) {
	t.Setenv("APIGEN_CLI_CMD", "acme-gen")
	if got := cliName(); got != "acme-gen" {
		t.Fatalf("cliName = %q", got)
	}
	t.Setenv("APIGEN_CLI_CMD", "")
	if got := cliName(); got != "apigen" {
		t.Fatalf("cliName = %q", got)
	}
}

func TestResolveEmojiEnabled(t *testing.T) {
	t.Setenv("NO_EMOJI", "")
	t.Setenv("TERM", "xterm")
	var buf bytes.Buffer
	if resolveEmojiEnabled(&buf, false) {
		t.Fatal("non-terminal writers must not get emoji")
	}
	if resolveEmojiEnabled(os.Stdout, true) {
		t.Fatal("--no-emoji must win")
	}
	t.Setenv("NO_EMOJI", "1")
	if resolveEmojiEnabled(os.Stdout, false) {
		t.Fatal("NO_EMOJI must disable emoji")
	}
}
