package auth

import (
	"errors"
	"net/http"

	"github.com/leapstack-labs/signdesk/internal/routes"
)

// Resolver maps request paths to pages.
type Resolver interface {
	Resolve(path string) routes.Match
}

// RequireAuth redirects page requests for the authenticated shell to
// signInPath when no credential is stored. Public pages, unknown paths and
// non-GET requests pass through.
func (s *Store) RequireAuth(resolver Resolver, signInPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			m := resolver.Resolve(r.URL.Path)
			if !m.Found() || m.Public() {
				next.ServeHTTP(w, r)
				return
			}

			if _, err := s.Load(r); errors.Is(err, ErrUnauthenticated) {
				s.logger.Debug("redirecting unauthenticated request", "path", r.URL.Path)
				http.Redirect(w, r, signInPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
