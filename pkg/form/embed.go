package form

import (
	"embed"
	"io/fs"
)

// DefaultDefinition is the file name of the bundled intake form.
const DefaultDefinition = "intake.yaml"

//go:embed definitions/*.yaml
var embeddedDefinitions embed.FS

// EmbeddedFS returns the bundled form definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDefinitions, "definitions")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
