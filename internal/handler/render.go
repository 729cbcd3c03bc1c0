package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/keijiban-dev/keijiban/internal/domain"
	"github.com/keijiban-dev/keijiban/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

type templateSet map[string]*template.Template

func parseTemplates() (templateSet, error) {
	paths, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	set := make(templateSet, len(paths))
	for _, p := range paths {
		tmpl, err := template.ParseFS(templateFS, p)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", p, err)
		}
		set[strings.TrimSuffix(path.Base(p), ".html")] = tmpl
	}
	return set, nil
}

// Page data passed to templates.

type threadsPage struct {
	Threads   []domain.Thread
	CSRFToken string
	Error     string
}

type postView struct {
	domain.Post
	Rendered template.HTML
}

type postsPage struct {
	Thread    domain.Thread
	Posts     []postView
	CSRFToken string
	Error     string
}

type replyPage struct {
	Thread    domain.Thread
	Target    postView
	CSRFToken string
	Error     string
}

type errorPage struct {
	Message string
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	h.renderStatus(w, name, data, http.StatusOK)
}

func (h *Handler) renderStatus(w http.ResponseWriter, name string, data any, status int) {
	tmpl, ok := h.templates[name]
	if !ok {
		logger.Log.Error("template not found", "template", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) renderPost(post domain.Post) postView {
	return postView{Post: post, Rendered: h.md.Render(post.Message)}
}
