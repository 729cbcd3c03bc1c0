package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/keijiban-dev/keijiban/internal/config"
	"github.com/keijiban-dev/keijiban/internal/domain"
	"github.com/keijiban-dev/keijiban/internal/service"
)

// --- Mocks ---

type MockThreadService struct {
	createFunc func(creationData domain.ThreadCreationData) (domain.Thread, error)
	getFunc    func(id domain.ThreadId) (domain.Thread, error)
	listFunc   func() ([]domain.Thread, error)
}

func (m *MockThreadService) Create(creationData domain.ThreadCreationData) (domain.Thread, error) {
	if m.createFunc != nil {
		return m.createFunc(creationData)
	}
	return domain.Thread{Id: 1, Title: creationData.Title}, nil
}

func (m *MockThreadService) Get(id domain.ThreadId) (domain.Thread, error) {
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return domain.Thread{Id: id, Title: "thread"}, nil
}

func (m *MockThreadService) List() ([]domain.Thread, error) {
	if m.listFunc != nil {
		return m.listFunc()
	}
	return nil, nil
}

type MockPostService struct {
	createFunc func(creationData domain.PostCreationData) (domain.Post, error)
	listFunc   func(threadId domain.ThreadId) ([]domain.Post, error)
	getFunc    func(threadId domain.ThreadId, num domain.PostNum) (domain.Post, error)
}

func (m *MockPostService) Create(creationData domain.PostCreationData) (domain.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(creationData)
	}
	return domain.Post{Id: 1, ThreadId: creationData.ThreadId, Num: 1}, nil
}

func (m *MockPostService) List(threadId domain.ThreadId) ([]domain.Post, error) {
	if m.listFunc != nil {
		return m.listFunc(threadId)
	}
	return nil, nil
}

func (m *MockPostService) Get(threadId domain.ThreadId, num domain.PostNum) (domain.Post, error) {
	if m.getFunc != nil {
		return m.getFunc(threadId, num)
	}
	return domain.Post{ThreadId: threadId, Num: num}, nil
}

type MockHealthService struct {
	checkFunc func(ctx context.Context) (service.HealthStatus, bool)
}

func (m *MockHealthService) Check(ctx context.Context) (service.HealthStatus, bool) {
	if m.checkFunc != nil {
		return m.checkFunc(ctx)
	}
	return service.HealthStatus{Status: "healthy", Database: "connected"}, true
}

// --- Helpers ---

func newTestHandler(t *testing.T, thread ThreadService, post PostService, health HealthService) *Handler {
	t.Helper()
	if thread == nil {
		thread = &MockThreadService{}
	}
	if post == nil {
		post = &MockPostService{}
	}
	if health == nil {
		health = &MockHealthService{}
	}
	h, err := New(thread, post, health, config.Default())
	require.NoError(t, err)
	return h
}

func newTestRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/", h.ListThreads).Methods("GET")
	r.HandleFunc("/", h.CreateThread).Methods("POST")
	r.HandleFunc("/{thread:[0-9]+}", h.GetThread).Methods("GET")
	r.HandleFunc("/{thread:[0-9]+}", h.CreatePost).Methods("POST")
	r.HandleFunc("/{thread:[0-9]+}/replyto-{post:[0-9]+}", h.GetReplyContext).Methods("GET")
	r.HandleFunc("/{thread:[0-9]+}/replyto-{post:[0-9]+}", h.CreateReply).Methods("POST")
	return r
}

func formHeader(req *http.Request) {
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
}
