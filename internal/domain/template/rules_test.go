// Where: internal/domain/template/rules_test.go
// What: Tests for path and content substitution rules.
// Why: No template token may survive a transformation.
package template

import (
	"strings"
	"testing"

	"github.com/poruru/apigen/internal/domain/provider"
)

const sampleSolution = `Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "src", "src", "{05A3A5CE-4659-4E00-A4BB-4129AEBEE7D0}"
Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "test", "test", "{079636FA-0D93-4251-921A-013355153BF5}"
Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "Solution Items", "Solution Items", "{C3E0690A-0044-402C-90D2-2DC0FF14980F}"
Project("{9A19103F-16F7-4668-BE54-9A1E7A4F7556}") = "StarterKit", "src\StarterKit\StarterKit.csproj", "{BD79C050-331F-4733-87DE-F650976253B5}"
Project("{9A19103F-16F7-4668-BE54-9A1E7A4F7556}") = "StarterKit.IntegrationTests", "test\StarterKit.IntegrationTests\StarterKit.IntegrationTests.csproj", "{948E75FD-C478-4001-AFBE-4D87181E1BEC}"
Project("{9A19103F-16F7-4668-BE54-9A1E7A4F7556}") = "StarterKit.UnitTests", "test\StarterKit.UnitTests\StarterKit.UnitTests.csproj", "{0A3016FD-A06C-4AA1-A843-DEA6A2F01696}"
	{BD79C050-331F-4733-87DE-F650976253B5}.Debug|Any CPU.Build.0 = Debug|Any CPU
`

const sampleLaunchSettings = `{
  "iisSettings": {
    "iisExpress": {
      "applicationUrl": "http://localhost:51001",
      "sslPort": 44300
    }
  },
  "profiles": {
    "StarterKit": {
      "launchUrl": "http://localhost:51002/status/ping",
      "applicationUrl": "http://localhost:51002"
    }
  }
}`

const sampleStartup = `//--dataaccess-startupImports--
namespace StarterKit.Startup
{
  public class Startup
  {
    //--dataaccess-variable--
    public void ConfigureServices(IServiceCollection services)
    {
      //--dataaccess-registerConfiguration--
      var provider = services.BuildServiceProvider();
      //--dataaccess-getService--
//--dataaccess-startupServices--
    }
  }
}`

func TestContentRulesReplaceGUIDsWithDesignatedIdentifiers(t *testing.T) {
	a := fixtureAnswers("postgres")
	ids := fixtureIDs()
	rules := ContentRules(a, provider.Resolve("postgres", a.ProjectName), ids)
	out := rules.Apply(sampleSolution)

	wants := map[string]string{
		GUIDSolutionItems: ids.SolutionItems,
		GUIDSource:        ids.Source,
		GUIDTest:          ids.Test,
		GUIDProject:       ids.Project,
		GUIDIntegration:   ids.Integration,
		GUIDUnit:          ids.Unit,
	}
	for token, id := range wants {
		if strings.Contains(out, token) {
			t.Fatalf("token %s not replaced", token)
		}
		if strings.Count(out, id) != strings.Count(sampleSolution, token) {
			t.Fatalf("identifier %s count %d, want %d", id, strings.Count(out, id), strings.Count(sampleSolution, token))
		}
	}
	if !strings.Contains(out, `"Acme.UnitTests", "test\Acme.UnitTests\Acme.UnitTests.csproj"`) {
		t.Fatalf("project names not replaced:\n%s", out)
	}
	// Project type GUIDs are not placeholders.
	if !strings.Contains(out, "{2150E333-8FDC-42A3-9474-1A3956D46DE8}") {
		t.Fatalf("non-placeholder GUID was modified")
	}
}

func TestContentRulesReplacePorts(t *testing.T) {
	a := fixtureAnswers("postgres")
	out := ContentRules(a, provider.Resolve("postgres", a.ProjectName), fixtureIDs()).Apply(sampleLaunchSettings)
	for _, want := range []string{
		`"applicationUrl": "http://localhost:5000"`,
		`"sslPort": 5443`,
		`"launchUrl": "http://localhost:5001/status/ping"`,
		`"applicationUrl": "http://localhost:5001"`,
		`"Acme": {`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in:\n%s", want, out)
		}
	}
}

func TestContentRulesSpliceProviderFragments(t *testing.T) {
	tests := []struct {
		code    string
		want    []string
		notWant []string
	}{
		{
			code:    "postgres",
			want:    []string{"options.UseNpgsql(", "DataAccessSettings dataAccessSettings;", "using Acme.DataAccess;"},
			notWant: []string{"UseSqlServer"},
		},
		{
			code:    "mssql",
			want:    []string{"options.UseSqlServer(", "DataAccessSettings.RegisterConfiguration("},
			notWant: []string{"UseNpgsql"},
		},
		{
			code:    "none",
			notWant: []string{"DataAccessSettings", "UseNpgsql", "UseSqlServer", "using Acme.DataAccess"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			a := fixtureAnswers(tc.code)
			out := ContentRules(a, provider.Resolve(tc.code, a.ProjectName), fixtureIDs()).Apply(sampleStartup)
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Fatalf("missing %q in:\n%s", w, out)
				}
			}
			for _, nw := range tc.notWant {
				if strings.Contains(out, nw) {
					t.Fatalf("unexpected %q in:\n%s", nw, out)
				}
			}
			if !strings.Contains(out, "namespace Acme.Startup") {
				t.Fatalf("namespace not replaced:\n%s", out)
			}
		})
	}
}

func TestContentRulesLeaveNoResidualTokens(t *testing.T) {
	names := []string{"Acme", "MyProjectApi", "Z", "OrderService2"}
	inputs := []string{sampleSolution, sampleLaunchSettings, sampleStartup, "starterkit-data starterkit.db StarterKitTests"}
	for _, name := range names {
		for _, code := range []string{"postgres", "mssql", ""} {
			a := fixtureAnswers(code).WithProjectName(name)
			rules := ContentRules(a, provider.Resolve(code, name), fixtureIDs())
			for _, in := range inputs {
				out := rules.Apply(in)
				for _, token := range ResidualTokens() {
					if strings.Contains(out, token) {
						t.Fatalf("name %s provider %q: token %q survived", name, code, token)
					}
				}
			}
		}
	}
}

func TestApplyBytesMatchesApply(t *testing.T) {
	a := fixtureAnswers("mssql")
	rules := ContentRules(a, provider.Resolve("mssql", a.ProjectName), fixtureIDs())
	if got, want := string(rules.ApplyBytes([]byte(sampleStartup))), rules.Apply(sampleStartup); got != want {
		t.Fatalf("ApplyBytes diverged from Apply:\n%s\n---\n%s", got, want)
	}
}

func TestContentRulesRenameProviderSettingsTypes(t *testing.T) {
	a := fixtureAnswers("postgres")
	rules := ContentRules(a, provider.Resolve("postgres", a.ProjectName), fixtureIDs())
	in := "public class DataAccessSettingsNpg {}\npublic static class DataAccessSettingsConfigKeyNpg {}\nclass DataAccessSettingsMs {}"
	out := rules.Apply(in)
	want := "public class DataAccessSettings {}\npublic static class DataAccessSettingsConfigKey {}\nclass DataAccessSettings {}"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestRulesDoNotRescanReplacements(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantPath string
		wantBody string
	}{
		{
			name:     "Mystarterkit",
			in:       "StarterKit/starterkit",
			wantPath: "Mystarterkit/mystarterkit",
			wantBody: "namespace Mystarterkit; // mystarterkit",
		},
		{
			name:     "StarterKitApi",
			in:       "StarterKit/starterkit",
			wantPath: "StarterKitApi/starterkitapi",
			wantBody: "namespace StarterKitApi; // starterkitapi",
		},
	}
	for _, tc := range tests {
		a := fixtureAnswers("postgres").WithProjectName(tc.name)
		if got := PathRules(a).Apply(tc.in); got != tc.wantPath {
			t.Fatalf("path for %s = %q, want %q", tc.name, got, tc.wantPath)
		}
		content := ContentRules(a, provider.Resolve("postgres", tc.name), fixtureIDs())
		if got := content.Apply("namespace StarterKit; // starterkit"); got != tc.wantBody {
			t.Fatalf("content for %s = %q, want %q", tc.name, got, tc.wantBody)
		}
	}
}

func TestRulesEarlierTokenWinsAtSamePosition(t *testing.T) {
	rules := Rules{
		{Name: "long", Token: "abc", Replacement: "1"},
		{Name: "short", Token: "ab", Replacement: "2"},
		{Name: "empty", Token: "", Replacement: "ignored"},
	}
	if got := rules.Apply("abcab"); got != "12" {
		t.Fatalf("Apply = %q", got)
	}
}
