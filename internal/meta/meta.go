// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep brand, module and file-layout names in one place.
package meta

const (
	// Project Identity
	AppName     = "apigen"
	Slug        = "apigen"
	EnvPrefix   = "APIGEN"
	ModulePath  = "github.com/poruru/apigen"
	DisplayName = "dgp-api-aspnetcore"

	// Directory Layout
	ConfigDir      = "apigen"
	ConfigFile     = "config.yaml"
	DescriptorFile = ".deliverable.json"
	PreservedDir   = ".git"
)
