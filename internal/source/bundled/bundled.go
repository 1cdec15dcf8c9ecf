// Package bundled embeds the default language and theme definitions.
package bundled

import (
	"embed"
	"io/fs"
)

// Root is the directory holding the embedded definitions. Bundled asset
// locators are rooted here.
const Root = "definitions"

//go:embed definitions
var files embed.FS

// FS returns the embedded definitions with languages/ and themes/ at the
// top level.
func FS() fs.FS {
	sub, err := fs.Sub(files, Root)
	if err != nil {
		panic(err)
	}
	return sub
}
