package service

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/keijiban-dev/keijiban/internal/domain"
	internal_errors "github.com/keijiban-dev/keijiban/internal/errors"
)

const maxTitleLen = 100

type ThreadStorage interface {
	CreateThread(creationData domain.ThreadCreationData) (domain.Thread, error)
	GetThread(id domain.ThreadId) (domain.Thread, error)
	ListThreads() ([]domain.Thread, error)
}

type Thread struct {
	storage  ThreadStorage
	validate *validator.Validate
}

func NewThread(storage ThreadStorage) *Thread {
	return &Thread{storage, validator.New(validator.WithRequiredStructEnabled())}
}

func (t *Thread) Create(creationData domain.ThreadCreationData) (domain.Thread, error) {
	creationData.Title = strings.TrimSpace(creationData.Title)
	if err := t.validate.Struct(creationData); err != nil {
		return domain.Thread{}, internal_errors.Validation("Title is required")
	}
	if utf8.RuneCountInString(creationData.Title) > maxTitleLen {
		return domain.Thread{}, internal_errors.Validation("Title is too long")
	}
	return t.storage.CreateThread(creationData)
}

func (t *Thread) Get(id domain.ThreadId) (domain.Thread, error) {
	return t.storage.GetThread(id)
}

// List returns all threads, newest first.
func (t *Thread) List() ([]domain.Thread, error) {
	return t.storage.ListThreads()
}
