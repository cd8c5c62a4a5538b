// Package site serves the marketing site's static assets. It carries no
// application logic; the waitlist form it renders posts to the HTTP
// adapter's /waitlist endpoint directly.
package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// Handler returns an http.Handler serving the embedded static site
// rooted at "/".
func Handler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// static/ is embedded at build time; a missing sub-tree is a
		// build-time error, not a runtime one.
		panic(err)
	}
	return http.FileServerFS(sub)
}
