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

func TestListThreadsHandler(t *testing.T) {
	thread := &MockThreadService{
		listFunc: func() ([]domain.Thread, error) {
			return []domain.Thread{
				{Id: 2, Title: "newer", CreatedAt: time.Now()},
				{Id: 1, Title: "older", CreatedAt: time.Now().Add(-time.Hour)},
			}, nil
		},
	}
	router := newTestRouter(newTestHandler(t, thread, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	// Match the rendered links, not bare titles: a title could also occur
	// in static template text.
	assert.Contains(t, body, ">newer</a>")
	assert.Contains(t, body, ">older</a>")
	assert.Less(t, strings.Index(body, ">newer</a>"), strings.Index(body, ">older</a>"))
}

func TestCreateThreadHandler(t *testing.T) {
	t.Run("success redirects to front page", func(t *testing.T) {
		thread := &MockThreadService{
			createFunc: func(creationData domain.ThreadCreationData) (domain.Thread, error) {
				assert.Equal(t, "Hello", creationData.Title)
				return domain.Thread{Id: 1, Title: creationData.Title}, nil
			},
		}
		router := newTestRouter(newTestHandler(t, thread, nil, nil))

		form := url.Values{"thread-title": {"Hello"}}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		formHeader(req)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
	})

	t.Run("validation error re-renders form with 400", func(t *testing.T) {
		thread := &MockThreadService{
			createFunc: func(creationData domain.ThreadCreationData) (domain.Thread, error) {
				return domain.Thread{}, internal_errors.Validation("Title is required")
			},
		}
		router := newTestRouter(newTestHandler(t, thread, nil, nil))

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("thread-title="))
		formHeader(req)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, rr.Header().Get("Location"))
		assert.Contains(t, rr.Body.String(), "Title is required")
		assert.Contains(t, rr.Body.String(), "thread-title") // the form is back
	})

	t.Run("storage unavailable is a generic 500", func(t *testing.T) {
		thread := &MockThreadService{
			createFunc: func(creationData domain.ThreadCreationData) (domain.Thread, error) {
				return domain.Thread{}, &internal_errors.StorageUnavailable{Err: assert.AnError}
			},
		}
		router := newTestRouter(newTestHandler(t, thread, nil, nil))

		form := url.Values{"thread-title": {"Hello"}}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		formHeader(req)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), assert.AnError.Error())
	})
}
