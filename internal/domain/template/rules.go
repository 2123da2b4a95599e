// Where: internal/domain/template/rules.go
// What: Ordered literal substitution rules for template paths and contents.
// Why: Keep the token set declarative so it can be enumerated and tested on its own.
package template

import (
	"strings"

	"github.com/poruru/apigen/internal/domain/answers"
	"github.com/poruru/apigen/internal/domain/identity"
	"github.com/poruru/apigen/internal/domain/provider"
)

// Placeholder tokens present in the template tree.
const (
	TokenProjectName      = "StarterKit"
	TokenLowerProjectName = "starterkit"

	GUIDSolutionItems = "C3E0690A-0044-402C-90D2-2DC0FF14980F"
	GUIDSource        = "05A3A5CE-4659-4E00-A4BB-4129AEBEE7D0"
	GUIDTest          = "079636FA-0D93-4251-921A-013355153BF5"
	GUIDProject       = "BD79C050-331F-4733-87DE-F650976253B5"
	GUIDIntegration   = "948E75FD-C478-4001-AFBE-4D87181E1BEC"
	GUIDUnit          = "0A3016FD-A06C-4AA1-A843-DEA6A2F01696"

	KestrelURL = "http://localhost:51002"
	IISURL     = "http://localhost:51001"
	SSLPort    = `"sslPort": 44300`

	MarkerPackage               = "<!-- dataaccess-package -->"
	MarkerStartupImports        = "//--dataaccess-startupImports--"
	MarkerStartupServices       = "//--dataaccess-startupServices--"
	MarkerRegisterConfiguration = "//--dataaccess-registerConfiguration--"
	MarkerVariable              = "//--dataaccess-variable--"
	MarkerGetService            = "//--dataaccess-getService--"
	MarkerProgramConfig         = "//--dataaccess-config--"
	MarkerTools                 = "<!-- dataaccess-tools -->"
)

// Rule replaces every occurrence of Token with Replacement.
type Rule struct {
	Name        string
	Token       string
	Replacement string
}

// Rules is an ordered rule list. All rules run in one left-to-right pass, so
// replacement text is never matched again. When tokens overlap at the same
// position the earlier rule wins.
type Rules []Rule

// Replacer compiles the rules into a single-pass replacer.
func (rs Rules) Replacer() *strings.Replacer {
	pairs := make([]string, 0, 2*len(rs))
	for _, r := range rs {
		if r.Token == "" {
			continue
		}
		pairs = append(pairs, r.Token, r.Replacement)
	}
	return strings.NewReplacer(pairs...)
}

// Apply runs every rule over s.
func (rs Rules) Apply(s string) string {
	return rs.Replacer().Replace(s)
}

// ApplyBytes runs every rule over data.
func (rs Rules) ApplyBytes(data []byte) []byte {
	return []byte(rs.Replacer().Replace(string(data)))
}

// Tokens lists the tokens matched by the rules.
func (rs Rules) Tokens() []string {
	tokens := make([]string, 0, len(rs))
	for _, r := range rs {
		tokens = append(tokens, r.Token)
	}
	return tokens
}

// providerFileRenames map provider-suffixed file names to their canonical name.
var providerFileRenames = Rules{
	{Name: "dataaccess-ms-json", Token: "dataaccess.ms.json", Replacement: "dataaccess.json"},
	{Name: "dataaccess-npg-json", Token: "dataaccess.npg.json", Replacement: "dataaccess.json"},
	{Name: "settings-ms", Token: "DataAccessSettings.ms.cs", Replacement: "DataAccessSettings.cs"},
	{Name: "settings-npg", Token: "DataAccessSettings.npg.cs", Replacement: "DataAccessSettings.cs"},
	{Name: "config-key-ms", Token: "DataAccessSettingsConfigKey.ms.cs", Replacement: "DataAccessSettingsConfigKey.cs"},
	{Name: "config-key-npg", Token: "DataAccessSettingsConfigKey.npg.cs", Replacement: "DataAccessSettingsConfigKey.cs"},
}

// PathRules returns the substitutions applied to template-relative paths.
func PathRules(a answers.Answers) Rules {
	rules := Rules{
		{Name: "project-name", Token: TokenProjectName, Replacement: a.ProjectName},
		{Name: "project-name-lower", Token: TokenLowerProjectName, Replacement: a.LowerProjectName()},
		{Name: "gitignore", Token: ".npmignore", Replacement: ".gitignore"},
	}
	return append(rules, providerFileRenames...)
}

// ContentRules returns the substitutions applied to text file contents.
func ContentRules(a answers.Answers, b provider.Bundle, ids identity.Set) Rules {
	return Rules{
		{Name: "project-name", Token: TokenProjectName, Replacement: a.ProjectName},
		{Name: "project-name-lower", Token: TokenLowerProjectName, Replacement: a.LowerProjectName()},
		{Name: "settings-npg-type", Token: "DataAccessSettingsNpg", Replacement: "DataAccessSettings"},
		{Name: "settings-ms-type", Token: "DataAccessSettingsMs", Replacement: "DataAccessSettings"},
		{Name: "config-key-ms-type", Token: "DataAccessSettingsConfigKeyMs", Replacement: "DataAccessSettingsConfigKey"},
		{Name: "config-key-npg-type", Token: "DataAccessSettingsConfigKeyNpg", Replacement: "DataAccessSettingsConfigKey"},
		{Name: "guid-solution-items", Token: GUIDSolutionItems, Replacement: ids.SolutionItems},
		{Name: "guid-src", Token: GUIDSource, Replacement: ids.Source},
		{Name: "guid-test", Token: GUIDTest, Replacement: ids.Test},
		{Name: "guid-project", Token: GUIDProject, Replacement: ids.Project},
		{Name: "guid-integration", Token: GUIDIntegration, Replacement: ids.Integration},
		{Name: "guid-unit", Token: GUIDUnit, Replacement: ids.Unit},
		{Name: "kestrel-url", Token: KestrelURL, Replacement: "http://localhost:" + a.KestrelHTTPPort},
		{Name: "iis-url", Token: IISURL, Replacement: "http://localhost:" + a.IISHTTPPort},
		{Name: "ssl-port", Token: SSLPort, Replacement: `"sslPort": ` + a.IISHTTPSPort},
		{Name: "package", Token: MarkerPackage, Replacement: b.Package},
		{Name: "startup-imports", Token: MarkerStartupImports, Replacement: b.StartupImports},
		{Name: "startup-services", Token: MarkerStartupServices, Replacement: b.StartupServices},
		{Name: "register-configuration", Token: MarkerRegisterConfiguration, Replacement: b.RegisterConfiguration},
		{Name: "variable", Token: MarkerVariable, Replacement: b.Variable},
		{Name: "get-service", Token: MarkerGetService, Replacement: b.GetService},
		{Name: "program-config", Token: MarkerProgramConfig, Replacement: b.ProgramConfig},
		{Name: "tools", Token: MarkerTools, Replacement: b.Tools},
	}
}

// ResidualTokens are tokens that must not survive a complete transformation.
func ResidualTokens() []string {
	return []string{
		TokenProjectName, TokenLowerProjectName,
		GUIDSolutionItems, GUIDSource, GUIDTest, GUIDProject, GUIDIntegration, GUIDUnit,
		KestrelURL, IISURL, SSLPort,
		MarkerPackage, MarkerStartupImports, MarkerStartupServices, MarkerRegisterConfiguration,
		MarkerVariable, MarkerGetService, MarkerProgramConfig, MarkerTools,
	}
}
