package router

import (
	userapp "github.com/volneilb/user-registry/internal/application"
	"github.com/volneilb/user-registry/internal/container"
	repouser "github.com/volneilb/user-registry/internal/domain/repository"
	pginfra "github.com/volneilb/user-registry/internal/infrastructure/postgres"
	handlers "github.com/volneilb/user-registry/internal/interface/http"
	"github.com/volneilb/user-registry/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *userapp.Service
	Handler *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := userapp.NewService(repo, container.GetLogger())

	// The publisher is optional; without it creates still succeed,
	// they just announce nothing.
	var pub handlers.NotificationPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	handler := handlers.NewUserHandler(
		service,
		pub,
		container.GetLogger(),
		container.GetConfig().PublishTimeout,
	)

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	r.Add(modules.NewUserModule(userDeps.Handler))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
