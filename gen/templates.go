package gen

import (
	"embed"
	"io/fs"
)

//go:embed templates
var builtinFS embed.FS

// BuiltinLoader loads the compiled-in template sets.
func BuiltinLoader() Loader {
	sub, err := fs.Sub(builtinFS, "templates")
	if err != nil {
		panic(err)
	}
	return NewFSLoader(sub)
}
