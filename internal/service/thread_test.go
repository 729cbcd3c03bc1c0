package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keijiban-dev/keijiban/internal/domain"
	internal_errors "github.com/keijiban-dev/keijiban/internal/errors"
)

// --- Mocks ---

// MockThreadStorage mocks the ThreadStorage interface.
type MockThreadStorage struct {
	createThreadFunc func(creationData domain.ThreadCreationData) (domain.Thread, error)
	getThreadFunc    func(id domain.ThreadId) (domain.Thread, error)
	listThreadsFunc  func() ([]domain.Thread, error)

	createCalled bool
}

func (m *MockThreadStorage) CreateThread(creationData domain.ThreadCreationData) (domain.Thread, error) {
	m.createCalled = true
	if m.createThreadFunc != nil {
		return m.createThreadFunc(creationData)
	}
	return domain.Thread{Id: 1, Title: creationData.Title}, nil
}

func (m *MockThreadStorage) GetThread(id domain.ThreadId) (domain.Thread, error) {
	if m.getThreadFunc != nil {
		return m.getThreadFunc(id)
	}
	return domain.Thread{Id: id}, nil
}

func (m *MockThreadStorage) ListThreads() ([]domain.Thread, error) {
	if m.listThreadsFunc != nil {
		return m.listThreadsFunc()
	}
	return nil, nil
}

// --- Tests ---

func TestThreadCreate(t *testing.T) {
	t.Run("valid title", func(t *testing.T) {
		storage := &MockThreadStorage{}
		thread, err := NewThread(storage).Create(domain.ThreadCreationData{Title: "Hello"})
		require.NoError(t, err)
		assert.Equal(t, "Hello", thread.Title)
		assert.True(t, storage.createCalled)
	})

	t.Run("title is trimmed", func(t *testing.T) {
		storage := &MockThreadStorage{
			createThreadFunc: func(creationData domain.ThreadCreationData) (domain.Thread, error) {
				assert.Equal(t, "Hello", creationData.Title)
				return domain.Thread{Id: 1, Title: creationData.Title}, nil
			},
		}
		_, err := NewThread(storage).Create(domain.ThreadCreationData{Title: "  Hello  "})
		require.NoError(t, err)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		storage := &MockThreadStorage{}
		_, err := NewThread(storage).Create(domain.ThreadCreationData{Title: ""})

		var withStatus *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &withStatus)
		assert.Equal(t, 400, withStatus.StatusCode)
		assert.False(t, storage.createCalled)
	})

	t.Run("whitespace only title rejected", func(t *testing.T) {
		storage := &MockThreadStorage{}
		_, err := NewThread(storage).Create(domain.ThreadCreationData{Title: "   \t  "})

		var withStatus *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &withStatus)
		assert.Equal(t, 400, withStatus.StatusCode)
		assert.False(t, storage.createCalled)
	})

	t.Run("overlong title rejected", func(t *testing.T) {
		storage := &MockThreadStorage{}
		_, err := NewThread(storage).Create(domain.ThreadCreationData{Title: strings.Repeat("a", maxTitleLen+1)})

		var withStatus *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &withStatus)
		assert.Equal(t, 400, withStatus.StatusCode)
		assert.False(t, storage.createCalled)
	})
}

func TestThreadList(t *testing.T) {
	storage := &MockThreadStorage{
		listThreadsFunc: func() ([]domain.Thread, error) {
			return []domain.Thread{{Id: 2, Title: "newer"}, {Id: 1, Title: "older"}}, nil
		},
	}
	threads, err := NewThread(storage).List()
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, "newer", threads[0].Title)
}
