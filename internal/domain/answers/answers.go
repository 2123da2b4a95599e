// Where: internal/domain/answers/answers.go
// What: Collected generation parameters and their parsing rules.
// Why: Give every pipeline stage one immutable value instead of a shared mutable map.
package answers

import (
	"fmt"
	"strconv"
	"strings"
)

// Provider identifies the data-access flavor of the generated project.
type Provider string

const (
	ProviderNone     Provider = ""
	ProviderPostgres Provider = "postgres"
	ProviderMsSQL    Provider = "mssql"
)

// Default values applied when a field is neither supplied nor prompted for.
const (
	DefaultDeleteContent = "y"
	DefaultDataProvider  = "p"
)

// ParseProvider maps a user-supplied provider code to a Provider.
// Unrecognized codes select ProviderNone, which is a valid configuration.
func ParseProvider(code string) Provider {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "p", "postgres":
		return ProviderPostgres
	case "m", "mssql":
		return ProviderMsSQL
	default:
		return ProviderNone
	}
}

// Label returns a human readable provider name.
func (p Provider) Label() string {
	switch p {
	case ProviderPostgres:
		return "PostgreSQL"
	case ProviderMsSQL:
		return "MSSQL"
	default:
		return "none"
	}
}

// ParseYesNo interprets y/yes/n/no answers. An empty value uses def.
func ParseYesNo(value string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return def, nil
	case "y", "yes", "true", "1":
		return true, nil
	case "n", "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected y or n, got %q", value)
	}
}

// Answers is the record produced by the parameter collector.
type Answers struct {
	DeleteContent   bool
	ProjectName     string
	KestrelHTTPPort string
	IISHTTPPort     string
	IISHTTPSPort    string
	// DataProviderCode keeps the raw code as entered, DataProvider its meaning.
	DataProviderCode string
	DataProvider     Provider
}

// WithProjectName returns a copy of a with the project name replaced.
func (a Answers) WithProjectName(name string) Answers {
	a.ProjectName = strings.TrimSpace(name)
	return a
}

// LowerProjectName returns the lowercase project name used for path and content rules.
func (a Answers) LowerProjectName() string {
	return strings.ToLower(a.ProjectName)
}

// Validate checks the invariants every later stage relies on.
func (a Answers) Validate() error {
	if err := ValidateProjectName(a.ProjectName); err != nil {
		return err
	}
	ports := []struct {
		name  string
		value string
	}{
		{name: "kestrel HTTP port", value: a.KestrelHTTPPort},
		{name: "IIS HTTP port", value: a.IISHTTPPort},
		{name: "IIS HTTPS port", value: a.IISHTTPSPort},
	}
	for _, p := range ports {
		if err := ValidatePort(p.value); err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
	}
	return nil
}

// ValidateProjectName rejects names that cannot serve as a namespace and path segment.
func ValidateProjectName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("project name is required")
	}
	for i, r := range trimmed {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9', r == '.':
			if i == 0 {
				return fmt.Errorf("project name %q must start with a letter", trimmed)
			}
		default:
			return fmt.Errorf("project name %q contains invalid character %q", trimmed, r)
		}
	}
	return nil
}

// ValidatePort accepts a decimal TCP port.
func ValidatePort(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("port is required")
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return fmt.Errorf("port %q is not a number", trimmed)
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port %d is out of range", n)
	}
	return nil
}
