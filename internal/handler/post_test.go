package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keijiban-dev/keijiban/internal/domain"
	internal_errors "github.com/keijiban-dev/keijiban/internal/errors"
)

func TestGetThreadHandler(t *testing.T) {
	t.Run("renders posts oldest first", func(t *testing.T) {
		rep := domain.PostNum(1)
		post := &MockPostService{
			listFunc: func(threadId domain.ThreadId) ([]domain.Post, error) {
				return []domain.Post{
					{Id: 1, ThreadId: threadId, Num: 1, Name: "Alice", Message: "Hi", Date: time.Now().Add(-time.Minute)},
					{Id: 2, ThreadId: threadId, Num: 2, Name: "Bob", Message: "Hi Alice", Date: time.Now(), ReplyTo: &rep},
				}, nil
			},
		}
		router := newTestRouter(newTestHandler(t, nil, post, nil))

		req := httptest.NewRequest(http.MethodGet, "/1", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "Alice")
		assert.Contains(t, body, "Bob")
		assert.Less(t, strings.Index(body, "Alice"), strings.Index(body, "Bob"))
		assert.Contains(t, body, "replyto-1")
	})

	t.Run("missing thread is 404", func(t *testing.T) {
		thread := &MockThreadService{
			getFunc: func(id domain.ThreadId) (domain.Thread, error) {
				return domain.Thread{}, internal_errors.NotFound("Thread not found")
			},
		}
		router := newTestRouter(newTestHandler(t, thread, nil, nil))

		req := httptest.NewRequest(http.MethodGet, "/99", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non-numeric thread id does not match route", func(t *testing.T) {
		router := newTestRouter(newTestHandler(t, nil, nil, nil))

		req := httptest.NewRequest(http.MethodGet, "/abc", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCreatePostHandler(t *testing.T) {
	t.Run("success redirects to thread", func(t *testing.T) {
		post := &MockPostService{
			createFunc: func(creationData domain.PostCreationData) (domain.Post, error) {
				assert.Equal(t, domain.ThreadId(7), creationData.ThreadId)
				assert.Equal(t, "Alice", creationData.Name)
				assert.Equal(t, "Hi", creationData.Message)
				assert.Nil(t, creationData.ReplyTo)
				return domain.Post{Id: 1, ThreadId: 7, Num: 1}, nil
			},
		}
		router := newTestRouter(newTestHandler(t, nil, post, nil))

		form := url.Values{"post-name": {"Alice"}, "post-message": {"Hi"}}
		req := httptest.NewRequest(http.MethodPost, "/7", strings.NewReader(form.Encode()))
		formHeader(req)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/7", rr.Header().Get("Location"))
	})

	t.Run("validation error re-renders thread page with 400", func(t *testing.T) {
		post := &MockPostService{
			createFunc: func(creationData domain.PostCreationData) (domain.Post, error) {
				return domain.Post{}, internal_errors.Validation("Name and message are required")
			},
		}
		router := newTestRouter(newTestHandler(t, nil, post, nil))

		req := httptest.NewRequest(http.MethodPost, "/7", strings.NewReader("post-name=&post-message="))
		formHeader(req)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Name and message are required")
	})

	t.Run("missing thread is 404", func(t *testing.T) {
		post := &MockPostService{
			createFunc: func(creationData domain.PostCreationData) (domain.Post, error) {
				return domain.Post{}, internal_errors.NotFound("Thread not found")
			},
		}
		router := newTestRouter(newTestHandler(t, nil, post, nil))

		form := url.Values{"post-name": {"Alice"}, "post-message": {"Hi"}}
		req := httptest.NewRequest(http.MethodPost, "/99", strings.NewReader(form.Encode()))
		formHeader(req)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGetReplyContextHandler(t *testing.T) {
	t.Run("shows the target post", func(t *testing.T) {
		post := &MockPostService{
			getFunc: func(threadId domain.ThreadId, num domain.PostNum) (domain.Post, error) {
				assert.Equal(t, domain.ThreadId(3), threadId)
				assert.Equal(t, domain.PostNum(2), num)
				return domain.Post{Id: 9, ThreadId: threadId, Num: num, Name: "Alice", Message: "quoted"}, nil
			},
		}
		router := newTestRouter(newTestHandler(t, nil, post, nil))

		req := httptest.NewRequest(http.MethodGet, "/3/replyto-2", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "quoted")
	})

	t.Run("missing target post is 404", func(t *testing.T) {
		post := &MockPostService{
			getFunc: func(threadId domain.ThreadId, num domain.PostNum) (domain.Post, error) {
				return domain.Post{}, internal_errors.NotFound("Post not found")
			},
		}
		router := newTestRouter(newTestHandler(t, nil, post, nil))

		req := httptest.NewRequest(http.MethodGet, "/3/replyto-99", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCreateReplyHandler(t *testing.T) {
	t.Run("sets reply target from the path", func(t *testing.T) {
		post := &MockPostService{
			createFunc: func(creationData domain.PostCreationData) (domain.Post, error) {
				require.NotNil(t, creationData.ReplyTo)
				assert.Equal(t, domain.PostNum(1), *creationData.ReplyTo)
				return domain.Post{Id: 2, ThreadId: creationData.ThreadId, Num: 2, ReplyTo: creationData.ReplyTo}, nil
			},
		}
		router := newTestRouter(newTestHandler(t, nil, post, nil))

		form := url.Values{"post-name": {"Bob"}, "post-message": {"Hi Alice"}}
		req := httptest.NewRequest(http.MethodPost, "/3/replyto-1", strings.NewReader(form.Encode()))
		formHeader(req)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/3", rr.Header().Get("Location"))
	})

	t.Run("missing target is 404 and no redirect", func(t *testing.T) {
		post := &MockPostService{
			createFunc: func(creationData domain.PostCreationData) (domain.Post, error) {
				return domain.Post{}, internal_errors.NotFound("Post not found")
			},
		}
		router := newTestRouter(newTestHandler(t, nil, post, nil))

		form := url.Values{"post-name": {"Bob"}, "post-message": {"Hi"}}
		req := httptest.NewRequest(http.MethodPost, "/3/replyto-99", strings.NewReader(form.Encode()))
		formHeader(req)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, rr.Header().Get("Location"))
	})
}
