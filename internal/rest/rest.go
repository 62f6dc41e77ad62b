package rest

import (
	"net/http"
	"os"
	"path/filepath"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type frontendHandler struct {
	staticPath string
	indexPath  string
}

// NewFrontendHandler serves static files from dir and falls back to the
// index file for paths the SPA router owns.
func NewFrontendHandler(dir string, index string) http.Handler {
	return frontendHandler{staticPath: dir, indexPath: index}
}

func (h frontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.staticPath, filepath.Clean(r.URL.Path))

	fi, err := os.Stat(path)
	if os.IsNotExist(err) || (err == nil && fi.IsDir()) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
}
