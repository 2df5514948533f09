package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/todocards/api/internal/container"
	handlers "github.com/todocards/api/internal/interface/http"
	"github.com/todocards/api/internal/interface/middleware"
	"github.com/todocards/api/pkg/helpers"
)

// UserModule wires the identity routes.
// Public: POST /api/register, POST /api/login, POST /api/refresh, GET /api/verify-token
// Protected: POST /api/logout, GET /api/account, PUT /api/account/avatar,
// POST /api/account/avatar/upload, GET /api/users/search

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	rg.GET("/verify-token", m.Handler.VerifyToken)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/account", m.Handler.Account)
		auth.PUT("/account/avatar", m.Handler.UpdateAvatar)
		auth.POST("/account/avatar/upload", m.Handler.UploadAvatar)
		auth.GET("/users/search", m.Handler.Search)
	}
}
