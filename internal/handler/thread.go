package handler

import (
	"net/http"

	mw "github.com/keijiban-dev/keijiban/internal/middleware"

	"github.com/keijiban-dev/keijiban/internal/domain"
)

// ListThreads serves the front page: all threads, newest first.
func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.thread.List()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.render(w, "threads", threadsPage{
		Threads:   threads,
		CSRFToken: mw.GetCSRFTokenFromContext(r),
	})
}

// CreateThread handles the thread-title form. Success redirects back to the
// front page; validation failure re-renders it with an inline error.
func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	_, err := h.thread.Create(domain.ThreadCreationData{Title: r.FormValue("thread-title")})
	if err != nil {
		if !isValidation(err) {
			h.writeError(w, err)
			return
		}
		threads, listErr := h.thread.List()
		if listErr != nil {
			h.writeError(w, listErr)
			return
		}
		h.renderStatus(w, "threads", threadsPage{
			Threads:   threads,
			CSRFToken: mw.GetCSRFTokenFromContext(r),
			Error:     err.Error(),
		}, http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
