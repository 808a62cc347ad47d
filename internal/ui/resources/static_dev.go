//go:build dev

package resources

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"runtime"
)

// getStaticDir derives the absolute path to the static directory
// relative to this source file, regardless of where the binary is run from.
func getStaticDir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return StaticDirectoryPath
	}
	return filepath.Join(filepath.Dir(filename), "static")
}

// builtinHandler serves the source tree's static directory so edits show
// up without a rebuild.
func builtinHandler() http.Handler {
	staticDir := getStaticDir()
	slog.Info("static assets served from filesystem", "path", staticDir)
	return dirHandler(staticDir)
}
