package http

import (
	"html/template"
	"net/http"

	"github.com/merchco/counterpos/internal/middleware"
	"github.com/merchco/counterpos/web"
)

// PagesHandler renders the HTML pages from the embedded templates.
type PagesHandler struct {
	tmpl *template.Template
}

// NewPagesHandler parses the embedded page templates.
func NewPagesHandler() (*PagesHandler, error) {
	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PagesHandler{tmpl: tmpl}, nil
}

// pageData is the context every page template receives.
type pageData struct {
	// Name is the logged-in staff display name; empty on the login page.
	Name string
}

// Root handles GET /: a redirect to the login page.
func (h *PagesHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusFound)
}

// LoginPage handles GET /login.
func (h *PagesHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html")
}

// Home handles GET /home.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home.html")
}

// Sale handles GET /sale.
func (h *PagesHandler) Sale(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "sale.html")
}

// Manage handles GET /manage.
func (h *PagesHandler) Manage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "manage.html")
}

// Log handles GET /log.
func (h *PagesHandler) Log(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "log.html")
}

func (h *PagesHandler) render(w http.ResponseWriter, r *http.Request, name string) {
	data := pageData{}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		data.Name = sess.Name
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
