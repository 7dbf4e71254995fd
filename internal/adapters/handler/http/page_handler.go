package http

import (
	"net/http"
	"path/filepath"

	"github.com/openvote/ballot/internal/core/ports"
)

type PageHandler struct {
	webDir string
	store  ports.SessionStore
}

func NewPageHandler(webDir string, store ports.SessionStore) *PageHandler {
	return &PageHandler{
		webDir: webDir,
		store:  store,
	}
}

// Home serves the landing page, or sends logged-in visitors straight to the
// voting page.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessionIdentity(r, h.store); ok {
		http.Redirect(w, r, "/vote", http.StatusFound)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.webDir, "index.html"))
}

func (h *PageHandler) VotePage(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.webDir, "vote.html"))
}

// AdminPage is served to anyone; the data behind it is gated by the admin
// key on /api/results.
func (h *PageHandler) AdminPage(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.webDir, "admin.html"))
}
