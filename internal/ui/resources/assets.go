// Package resources provides static asset handling for the UI server.
package resources

import (
	"net/http"
	"os"
)

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// Handler returns an HTTP handler for serving static files. A non-empty dir
// overrides the built-in assets and is served from disk without caching.
func Handler(dir string) http.Handler {
	if dir == "" {
		return builtinHandler()
	}
	return dirHandler(dir)
}

func dirHandler(dir string) http.Handler {
	fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(os.DirFS(dir))))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	})
}

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}
