package handler

import (
	"context"

	"github.com/keijiban-dev/keijiban/internal/config"
	"github.com/keijiban-dev/keijiban/internal/domain"
	"github.com/keijiban-dev/keijiban/internal/markdown"
	"github.com/keijiban-dev/keijiban/internal/service"
)

// Service interfaces are narrowed here so handler tests can swap in mocks.
type ThreadService interface {
	Create(creationData domain.ThreadCreationData) (domain.Thread, error)
	Get(id domain.ThreadId) (domain.Thread, error)
	List() ([]domain.Thread, error)
}

type PostService interface {
	Create(creationData domain.PostCreationData) (domain.Post, error)
	List(threadId domain.ThreadId) ([]domain.Post, error)
	Get(threadId domain.ThreadId, num domain.PostNum) (domain.Post, error)
}

type HealthService interface {
	Check(ctx context.Context) (service.HealthStatus, bool)
}

type Handler struct {
	thread ThreadService
	post   PostService
	health HealthService
	cfg    *config.Config

	templates templateSet
	md        *markdown.Renderer
}

func New(thread ThreadService, post PostService, health HealthService, cfg *config.Config) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		thread:    thread,
		post:      post,
		health:    health,
		cfg:       cfg,
		templates: templates,
		md:        markdown.New(),
	}, nil
}
