package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/handlers"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/pkg/apierrors"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Tasks  *handlers.TaskHandler
	Users  *handlers.UserHandler
	Docs   *handlers.DocsHandler
}

type RouterOptions struct {
	TrustedProxies []string
	// AllowedOrigins are the browser origins allowed by CORS; "*" allows any.
	AllowedOrigins []string
}

// NewRouter builds the gin engine with recovery, request ids, access logs,
// security headers, CORS and every API route.
func NewRouter(logger *zap.Logger, opts RouterOptions, h Handlers) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.GinZapMiddleware(logger, "/api/health"),
		middleware.SecurityHeadersMiddleware(),
		middleware.CORSMiddleware(opts.AllowedOrigins),
	)
	RegisterRoutes(r, h)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		if h.Docs != nil {
			api.GET("/docs", h.Docs.SwaggerUI)
			api.GET("/docs.json", h.Docs.OpenAPI)
		}

		api.GET("/tasks", h.Tasks.ListTasks)
		api.GET("/tasks/:id", h.Tasks.GetTask)
		api.POST("/tasks", h.Tasks.CreateTask)
		api.PUT("/tasks/:id", h.Tasks.UpdateTask)
		api.PATCH("/tasks/:id", h.Tasks.UpdateTask)
		api.DELETE("/tasks/:id", h.Tasks.DeleteTask)

		api.GET("/users", h.Users.ListUsers)
		api.GET("/users/:id", h.Users.GetUser)
		api.POST("/users", h.Users.CreateUser)
		api.PUT("/users/:id", h.Users.UpdateUser)
		api.PATCH("/users/:id", h.Users.UpdateUser)
		api.DELETE("/users/:id", h.Users.DeleteUser)
	}

	r.NoRoute(middleware.LanguageMiddleware(), func(c *gin.Context) {
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgRouteNotFound, middleware.GetLang(c)),
		)
	})
}
