package setup

import (
	"github.com/keijiban-dev/keijiban/internal/config"
	"github.com/keijiban-dev/keijiban/internal/handler"
	"github.com/keijiban-dev/keijiban/internal/service"
	"github.com/keijiban-dev/keijiban/internal/storage/sqlstore"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config  *config.Config
	Storage *sqlstore.Storage
	Handler *handler.Handler
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := sqlstore.New(cfg)
	if err != nil {
		return nil, err
	}

	thread := service.NewThread(storage)
	post := service.NewPost(storage)
	health := service.NewHealth(storage)

	h, err := handler.New(thread, post, health, cfg)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	return &Dependencies{
		Config:  cfg,
		Storage: storage,
		Handler: h,
	}, nil
}
