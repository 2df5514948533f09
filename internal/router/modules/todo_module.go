package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/todocards/api/internal/container"
	handlers "github.com/todocards/api/internal/interface/http"
	"github.com/todocards/api/internal/interface/middleware"
	"github.com/todocards/api/pkg/helpers"
)

// TodoModule wires the card and item routes. Everything here requires a
// verified token; the handler reads the owner id from the context.

type TodoModule struct {
	Handler *handlers.TodoHandler
	JWT     *helpers.JWTManager
}

func NewTodoModule(h *handlers.TodoHandler, jwt *helpers.JWTManager) *TodoModule {
	return &TodoModule{Handler: h, JWT: jwt}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/todos")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 240, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.List)
		auth.POST("/addCard", m.Handler.AddCard)
		auth.POST("/deleteCard", m.Handler.DeleteCard)
		auth.PUT("/updateCard", m.Handler.UpdateCard)
		auth.POST("/addItems", m.Handler.AddItems)
		auth.PUT("/completeItem", m.Handler.CompleteItem)
		auth.DELETE("/deleteItem", m.Handler.DeleteItem)
	}
}
