// Where: assets/templates.go
// What: Embed the ASP.NET Core project template tree.
// Why: Ship a working default template set inside the binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templatesFS embed.FS

// Templates returns the built-in template tree rooted at its top directory.
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
