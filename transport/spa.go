package transport

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/utils/errors"
)

// SPAHandler serves the built frontend from dir. Paths without a file fall
// back to index.html so client side routes survive a reload; unknown API
// paths get a JSON 404 instead.
func SPAHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			writeJSON(w, http.StatusNotFound, ErrorResponse{
				Success:    false,
				Error:      "API route not found",
				Code:       errors.SetCustomError(constant.ErrNotFound).ErrorCode(),
				StatusCode: http.StatusNotFound,
				Timestamp:  now(),
			})
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeError(w, errors.SetCustomError(constant.ErrNotFound))
			return
		}

		clean := path.Clean("/" + r.URL.Path)
		if clean != "/" {
			if info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean))); err == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			writeError(w, errors.SetCustomError(constant.ErrNotFound))
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, index)
	})
}
