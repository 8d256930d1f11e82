// Package web embeds the built single-page client so the server ships
// as one binary.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed dist
var embedded embed.FS

var distFS = func() fs.FS {
	sub, err := fs.Sub(embedded, "dist")
	if err != nil {
		panic(err)
	}
	return sub
}()

// FileSystem exposes the bundle for http serving.
func FileSystem() http.FileSystem {
	return http.FS(distFS)
}

// Exists reports whether the bundle contains the named file.
func Exists(name string) bool {
	f, err := distFS.Open(name)
	if err != nil {
		return false
	}
	f.Close()

	return true
}

// IndexHTML returns the entry document used for client-side routing
// fallbacks.
func IndexHTML() []byte {
	b, err := fs.ReadFile(distFS, "index.html")
	if err != nil {
		panic(err)
	}

	return b
}
