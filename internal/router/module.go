package router

import "github.com/gin-gonic/gin"

// Module is a feature module that registers its routes on the shared
// /api group. The user CRUD module and the expvar debug module both
// implement it; InitModules decides which ones get added.
type Module interface {
	Register(rg *gin.RouterGroup)
}
