package router

import (
	"github.com/campusfront/internal/config"
	"github.com/campusfront/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, api *handler.API) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("campusfront_session", store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 公共站点路由
	r.GET("/", api.ShowHomePage)
	r.GET("/p/:slug", api.ShowPage)
	r.GET("/news", api.ListNews)
	r.GET("/news/:slug", api.GetNewsBySlug)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", handler.Login)
		admin.GET("/logout", handler.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			api2 := auth.Group("/api")
			{
				api2.GET("/pages", api.ListPages)
				api2.GET("/pages/:id", api.GetPage)
				api2.POST("/pages", api.CreatePage)
				api2.PUT("/pages/:id", api.UpdatePage)
				api2.DELETE("/pages/:id", api.DeletePage)

				api2.GET("/pages/:id/sections", api.ListSections)
				api2.POST("/pages/:id/sections", api.CreateSection)
				api2.POST("/pages/:id/sections/reorder", api.ReorderSections)
				api2.PUT("/sections/:id", api.UpdateSection)
				api2.DELETE("/sections/:id", api.DeleteSection)

				api2.POST("/news", api.CreateNews)
				api2.PUT("/news/:id", api.UpdateNews)
				api2.DELETE("/news/:id", api.DeleteNews)
			}
		}
	}

	return r
}
