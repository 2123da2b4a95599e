// Where: internal/domain/provider/bundle.go
// What: Data-access fragment bundles per database provider.
// Why: Splice provider wiring into many template files through marker tokens.
package provider

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/poruru/apigen/internal/domain/answers"
)

// Bundle holds the text fragments substituted for the data-access markers.
type Bundle struct {
	Input                 string
	Provider              answers.Provider
	Package               string
	StartupImports        string
	StartupServices       string
	RegisterConfiguration string
	Variable              string
	GetService            string
	ProgramConfig         string
	Tools                 string
}

// Empty reports whether the bundle carries no database wiring.
func (b Bundle) Empty() bool {
	return b.Provider == answers.ProviderNone
}

type flavor struct {
	PackageReference string
	Connection       []string
}

var flavors = map[answers.Provider]flavor{
	answers.ProviderPostgres: {
		PackageReference: `<PackageReference Include="Npgsql.EntityFrameworkCore.PostgreSQL" Version="3.1.4" />`,
		Connection: []string{
			"options.UseNpgsql(dataAccessSettings.GetConnectionString(),",
			"opt => opt.MigrationsHistoryTable(HistoryRepository.DefaultTableName, DataAccessDefaults.SchemaName));",
		},
	},
	answers.ProviderMsSQL: {
		PackageReference: `<PackageReference Include="Microsoft.EntityFrameworkCore.SqlServer" Version="3.1.5" />`,
		Connection: []string{
			"options.UseSqlServer(dataAccessSettings.GetConnectionString());",
		},
	},
}

const efToolingVersion = "3.1.5"

var fragmentSources = map[string]string{
	"package": `<PackageReference Include="Microsoft.EntityFrameworkCore" Version="{{ .EFVersion }}" />
{{ template "privateAssets" (list "Microsoft.EntityFrameworkCore.Design" .EFVersion) }}
{{ .Flavor.PackageReference }}
`,
	"tools": `{{ template "privateAssets" (list "Microsoft.EntityFrameworkCore.Tools" .EFVersion) }}
`,
	"startupImports": `{{- $lines := list -}}
{{- range .Usings }}{{ $lines = append $lines (printf "using %s;" .) }}{{ end -}}
{{ join "\n" $lines }}`,
	"startupServices": `      services.AddDataAccess<EntityContext>()
      .AddDbContext<EntityContext>(options => {
{{ join "\n" .Flavor.Connection | indent 10 }}
      });`,
	"registerConfiguration": `DataAccessSettings.RegisterConfiguration(services, Configuration.GetSection(Shared.Constants.ConfigurationSectionKey.DataAccess), Environment);`,
	"variable":              `DataAccessSettings dataAccessSettings;`,
	"getService":            `dataAccessSettings = provider.GetService<IOptions<DataAccessSettings>>().Value;`,
	"programConfig": `config.AddJsonFile(JsonFilesKey.DataAccessJson);
`,
}

const sharedDefinitions = `{{ define "privateAssets" -}}
<PackageReference Include="{{ index . 0 }}" Version="{{ index . 1 }}">
<PrivateAssets>all</PrivateAssets>
<IncludeAssets>runtime; build; native; contentfiles; analyzers; buildtransitive</IncludeAssets>
</PackageReference>
{{- end }}`

var fragments = parseFragments()

func parseFragments() map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(fragmentSources))
	for name, src := range fragmentSources {
		tmpl := template.New(name).Funcs(sprig.TxtFuncMap()).Option("missingkey=error")
		tmpl = template.Must(tmpl.Parse(sharedDefinitions))
		parsed[name] = template.Must(tmpl.Parse(src))
	}
	return parsed
}

type fragmentData struct {
	EFVersion string
	Usings    []string
	Flavor    flavor
}

// Resolve maps a provider code and project name to a fragment bundle.
// Unrecognized codes produce an empty bundle that only keeps Input.
func Resolve(code, projectName string) Bundle {
	p := answers.ParseProvider(code)
	bundle := Bundle{Input: code, Provider: p}
	f, ok := flavors[p]
	if !ok {
		bundle.Provider = answers.ProviderNone
		return bundle
	}

	data := fragmentData{
		EFVersion: efToolingVersion,
		Usings: []string{
			"Microsoft.EntityFrameworkCore",
			"Microsoft.EntityFrameworkCore.Migrations",
			"Digipolis.DataAccess",
			projectName + ".DataAccess",
			projectName + ".DataAccess.Options",
			"Microsoft.EntityFrameworkCore.Diagnostics",
		},
		Flavor: f,
	}

	bundle.Package = mustRender("package", data)
	bundle.StartupImports = mustRender("startupImports", data)
	bundle.StartupServices = mustRender("startupServices", data)
	bundle.RegisterConfiguration = mustRender("registerConfiguration", data)
	bundle.Variable = mustRender("variable", data)
	bundle.GetService = mustRender("getService", data)
	bundle.ProgramConfig = mustRender("programConfig", data)
	bundle.Tools = mustRender("tools", data)
	return bundle
}

// Fragments are compiled in; a render failure is a programming error.
func mustRender(name string, data fragmentData) string {
	var buf bytes.Buffer
	if err := fragments[name].Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("render %s fragment: %v", name, err))
	}
	return buf.String()
}
