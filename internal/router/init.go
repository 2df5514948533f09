package router

import (
	"github.com/todocards/api/internal/application"
	"github.com/todocards/api/internal/container"
	pginfra "github.com/todocards/api/internal/infrastructure/postgres"
	handlers "github.com/todocards/api/internal/interface/http"
	"github.com/todocards/api/internal/router/modules"
)

// InitModules constructs all feature modules from container singletons and
// registers them with the registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetPGPool())

	userSvc := application.NewUserService(
		repo,
		container.GetJWT(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRedis(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESUsersIndex,
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
		cfg.AppURL,
	)
	todoSvc := application.NewTodoService(repo, container.GetLogger())

	userHandler := handlers.NewUserHandler(userSvc, container.GetJWT(), container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
	todoHandler := handlers.NewTodoHandler(todoSvc, container.GetLogger())

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewTodoModule(todoHandler, container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
