// Where: internal/domain/template/exclusion.go
// What: Provider-keyed exclusion policy for template files.
// Why: Express which data-access files each provider drops as one enumerable table.
package template

import (
	"path"

	"github.com/poruru/apigen/internal/domain/answers"
)

// Matcher reports whether a template-relative, slash-separated path matches.
type Matcher interface {
	Match(relPath string) bool
	String() string
}

// FileName matches paths whose base name equals the value.
type FileName string

func (f FileName) Match(relPath string) bool {
	return path.Base(relPath) == string(f)
}

func (f FileName) String() string {
	return string(f)
}

var (
	msSQLDataAccess = []Matcher{
		FileName("dataaccess.ms.json"),
		FileName("DataAccessSettings.ms.cs"),
		FileName("DataAccessSettingsConfigKey.ms.cs"),
	}
	postgresDataAccess = []Matcher{
		FileName("dataaccess.npg.json"),
		FileName("DataAccessSettings.npg.cs"),
		FileName("DataAccessSettingsConfigKey.npg.cs"),
	}
	sharedDataAccess = []Matcher{
		FileName("EntityContext.cs"),
		FileName("DataAccessDefaults.cs"),
	}
)

// exclusionPolicy maps each provider to the files it leaves out.
var exclusionPolicy = map[answers.Provider][]Matcher{
	answers.ProviderPostgres: msSQLDataAccess,
	answers.ProviderMsSQL:    postgresDataAccess,
	answers.ProviderNone:     concatMatchers(sharedDataAccess, msSQLDataAccess, postgresDataAccess),
}

func concatMatchers(groups ...[]Matcher) []Matcher {
	var out []Matcher
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Exclusions returns the matchers applied for p. Unknown providers use the
// no-database policy.
func Exclusions(p answers.Provider) []Matcher {
	if m, ok := exclusionPolicy[p]; ok {
		return append([]Matcher(nil), m...)
	}
	return append([]Matcher(nil), exclusionPolicy[answers.ProviderNone]...)
}

// Excluded reports whether relPath is dropped for provider p, and by which matcher.
func Excluded(p answers.Provider, relPath string) (Matcher, bool) {
	for _, m := range Exclusions(p) {
		if m.Match(relPath) {
			return m, true
		}
	}
	return nil, false
}
