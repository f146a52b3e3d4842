package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/volneilb/user-registry/internal/container"
	handlers "github.com/volneilb/user-registry/internal/interface/http"
	"github.com/volneilb/user-registry/internal/interface/middleware"
)

// UserModule wires the user CRUD handlers into routes.
// POST /api/users, GET /api/users, GET /api/users/:id,
// PUT /api/users/:id, DELETE /api/users/:id

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	users := rg.Group("/users")
	{
		users.POST("", writeLimiter, m.Handler.Create)
		users.GET("", readLimiter, m.Handler.FindAll)
		users.GET("/:id", readLimiter, m.Handler.FindByID)
		users.PUT("/:id", writeLimiter, m.Handler.Update)
		users.DELETE("/:id", writeLimiter, m.Handler.Delete)
	}
}
