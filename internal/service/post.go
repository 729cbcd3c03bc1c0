package service

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/keijiban-dev/keijiban/internal/domain"
	internal_errors "github.com/keijiban-dev/keijiban/internal/errors"
)

const (
	maxNameLen    = 50
	maxMessageLen = 10_000
)

type PostStorage interface {
	GetThread(id domain.ThreadId) (domain.Thread, error)
	CreatePost(creationData domain.PostCreationData) (domain.Post, error)
	ListPosts(threadId domain.ThreadId) ([]domain.Post, error)
	GetPost(threadId domain.ThreadId, num domain.PostNum) (domain.Post, error)
}

type Post struct {
	storage  PostStorage
	validate *validator.Validate
}

func NewPost(storage PostStorage) *Post {
	return &Post{storage, validator.New(validator.WithRequiredStructEnabled())}
}

// Create persists a post after validating the input, checking the owning
// thread exists and, for replies, resolving the target post by its
// thread-local number. Not-found conditions propagate untouched so the
// handler can answer 404.
func (p *Post) Create(creationData domain.PostCreationData) (domain.Post, error) {
	creationData.Name = strings.TrimSpace(creationData.Name)
	creationData.Message = strings.TrimSpace(creationData.Message)
	if err := p.validate.Struct(creationData); err != nil {
		return domain.Post{}, internal_errors.Validation("Name and message are required")
	}
	if utf8.RuneCountInString(creationData.Name) > maxNameLen {
		return domain.Post{}, internal_errors.Validation("Name is too long")
	}
	if utf8.RuneCountInString(creationData.Message) > maxMessageLen {
		return domain.Post{}, internal_errors.Validation("Message is too long")
	}

	if _, err := p.storage.GetThread(creationData.ThreadId); err != nil {
		return domain.Post{}, err
	}
	if creationData.ReplyTo != nil {
		if _, err := p.storage.GetPost(creationData.ThreadId, *creationData.ReplyTo); err != nil {
			return domain.Post{}, err
		}
	}

	return p.storage.CreatePost(creationData)
}

// List returns a thread's posts, oldest first.
func (p *Post) List(threadId domain.ThreadId) ([]domain.Post, error) {
	return p.storage.ListPosts(threadId)
}

// Get fetches one post by its thread-local sequence number.
func (p *Post) Get(threadId domain.ThreadId, num domain.PostNum) (domain.Post, error) {
	return p.storage.GetPost(threadId, num)
}
