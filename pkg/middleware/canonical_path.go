package middleware

import (
	"net/http"
	"routekit/pkg/shared"
)

// CanonicalPath redirects requests whose path is not canonical to the
// canonical form. GET and HEAD get 301, other methods 308 so the body is
// replayed.
func CanonicalPath() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			canonical := shared.ValidatePath(r.URL.Path)
			if canonical == r.URL.Path {
				next.ServeHTTP(w, r)
				return
			}

			code := http.StatusPermanentRedirect
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				code = http.StatusMovedPermanently
			}

			target := *r.URL
			target.Path = canonical
			target.RawPath = ""
			http.Redirect(w, r, target.RequestURI(), code)
		})
	}
}
