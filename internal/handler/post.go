package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/keijiban-dev/keijiban/internal/domain"
	mw "github.com/keijiban-dev/keijiban/internal/middleware"
)

// GetThread serves a thread's page: its posts, oldest first.
func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(mux.Vars(r)["thread"], "thread ID")
	if err != nil {
		h.renderError(w, err.Error(), http.StatusBadRequest)
		return
	}

	thread, err := h.thread.Get(threadId)
	if err != nil {
		h.writeError(w, err)
		return
	}
	posts, err := h.post.List(threadId)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.render(w, "posts", h.postsPage(r, thread, posts, ""))
}

// CreatePost handles the post form within a thread.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(mux.Vars(r)["thread"], "thread ID")
	if err != nil {
		h.renderError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	_, err = h.post.Create(domain.PostCreationData{
		ThreadId: threadId,
		Name:     r.FormValue("post-name"),
		Message:  r.FormValue("post-message"),
	})
	if err != nil {
		if !isValidation(err) {
			h.writeError(w, err)
			return
		}
		thread, getErr := h.thread.Get(threadId)
		if getErr != nil {
			h.writeError(w, getErr)
			return
		}
		posts, listErr := h.post.List(threadId)
		if listErr != nil {
			h.writeError(w, listErr)
			return
		}
		h.renderStatus(w, "posts", h.postsPage(r, thread, posts, err.Error()), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/%d", threadId), http.StatusSeeOther)
}

// GetReplyContext shows the single post being replied to, with the reply form.
func (h *Handler) GetReplyContext(w http.ResponseWriter, r *http.Request) {
	threadId, num, ok := h.parseReplyVars(w, r)
	if !ok {
		return
	}

	thread, err := h.thread.Get(threadId)
	if err != nil {
		h.writeError(w, err)
		return
	}
	target, err := h.post.Get(threadId, num)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.render(w, "reply", replyPage{
		Thread:    thread,
		Target:    h.renderPost(target),
		CSRFToken: mw.GetCSRFTokenFromContext(r),
	})
}

// CreateReply handles the reply form. The new post's rep_id is the target's
// thread-local number.
func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	threadId, num, ok := h.parseReplyVars(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	_, err := h.post.Create(domain.PostCreationData{
		ThreadId: threadId,
		Name:     r.FormValue("post-name"),
		Message:  r.FormValue("post-message"),
		ReplyTo:  &num,
	})
	if err != nil {
		if !isValidation(err) {
			h.writeError(w, err)
			return
		}
		thread, getErr := h.thread.Get(threadId)
		if getErr != nil {
			h.writeError(w, getErr)
			return
		}
		target, getErr := h.post.Get(threadId, num)
		if getErr != nil {
			h.writeError(w, getErr)
			return
		}
		h.renderStatus(w, "reply", replyPage{
			Thread:    thread,
			Target:    h.renderPost(target),
			CSRFToken: mw.GetCSRFTokenFromContext(r),
			Error:     err.Error(),
		}, http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/%d", threadId), http.StatusSeeOther)
}

func (h *Handler) parseReplyVars(w http.ResponseWriter, r *http.Request) (threadId domain.ThreadId, num domain.PostNum, ok bool) {
	vars := mux.Vars(r)
	threadId, err := parseIntParam(vars["thread"], "thread ID")
	if err != nil {
		h.renderError(w, err.Error(), http.StatusBadRequest)
		return 0, 0, false
	}
	num, err = parseIntParam(vars["post"], "post ID")
	if err != nil {
		h.renderError(w, err.Error(), http.StatusBadRequest)
		return 0, 0, false
	}
	return threadId, num, true
}

func (h *Handler) postsPage(r *http.Request, thread domain.Thread, posts []domain.Post, errMsg string) postsPage {
	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		views = append(views, h.renderPost(post))
	}
	return postsPage{
		Thread:    thread,
		Posts:     views,
		CSRFToken: mw.GetCSRFTokenFromContext(r),
		Error:     errMsg,
	}
}
