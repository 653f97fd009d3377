package routes

import (
	"net/http"

	"eduplatform/controllers"
	_ "eduplatform/docs"
	middlewares "eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/validator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controllers struct {
	Auth         *controllers.AuthController
	Notification *controllers.NotificationController
	Content      *controllers.ContentController
	Subject      *controllers.SubjectController
}

func SetupRoutes(router *gin.Engine, tokens middlewares.TokenParser, ctrl Controllers) {
	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		validator.UseJSONNames(v)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	var (
		teacherOrAdmin = middlewares.RoleMiddleware(models.RoleTeacher, models.RoleAdmin)
		adminOnly      = middlewares.RoleMiddleware(models.RoleAdmin)
	)

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", ctrl.Auth.Register)
	v1.POST("/auth/login", ctrl.Auth.Login)
	v1.POST("/auth/google", ctrl.Auth.GoogleLogin)

	authed := v1.Group("", middlewares.AuthMiddleware(tokens))
	authed.GET("/auth/me", ctrl.Auth.Me)

	authed.GET("/notifications", ctrl.Notification.GetNotifications)
	authed.GET("/notifications/unread-count", ctrl.Notification.GetUnreadCount)
	authed.PUT("/notifications/:id/read", ctrl.Notification.MarkAsRead)
	authed.POST("/notifications", teacherOrAdmin, ctrl.Notification.SendNotification)
	authed.POST("/notifications/bulk", adminOnly, ctrl.Notification.SendBulkNotifications)
	authed.GET("/notifications/preferences", ctrl.Notification.GetPreferences)
	authed.PUT("/notifications/preferences", ctrl.Notification.UpdatePreferences)
	authed.DELETE("/notifications/cleanup", adminOnly, ctrl.Notification.CleanupOldNotifications)

	// Creator-or-admin checks for content writes happen in the service.
	authed.POST("/content", teacherOrAdmin, ctrl.Content.CreateContent)
	authed.GET("/content", ctrl.Content.GetContentList)
	authed.GET("/content/:id", ctrl.Content.GetContent)
	authed.GET("/content/uuid/:uuid", ctrl.Content.GetContentByUUID)
	authed.PUT("/content/:id", ctrl.Content.UpdateContent)
	authed.DELETE("/content/:id", ctrl.Content.DeleteContent)
	authed.POST("/content/:id/like", ctrl.Content.ToggleLike)
	authed.POST("/content/:id/media", ctrl.Content.UploadMedia)
	authed.GET("/content-stats", adminOnly, ctrl.Content.GetContentStats)

	authed.GET("/subjects", ctrl.Subject.GetSubjects)
	authed.GET("/subjects/search", ctrl.Subject.SearchSubjects)
	authed.GET("/subjects/:id", ctrl.Subject.GetSubject)

	admin := authed.Group("", adminOnly)
	admin.POST("/subjects", ctrl.Subject.CreateSubject)
	admin.PUT("/subjects/:id", ctrl.Subject.UpdateSubject)
	admin.DELETE("/subjects/:id", ctrl.Subject.DeleteSubject)
}
