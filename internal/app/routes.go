package app

import (
	"time"

	_ "github.com/mauriciosoaresd/todo-study-spring/docs"
	"github.com/mauriciosoaresd/todo-study-spring/internal/config"
	"github.com/mauriciosoaresd/todo-study-spring/internal/handlers"
	"github.com/mauriciosoaresd/todo-study-spring/internal/metrics"
	"github.com/mauriciosoaresd/todo-study-spring/internal/repo"
	"github.com/mauriciosoaresd/todo-study-spring/internal/service"
	"github.com/mauriciosoaresd/todo-study-spring/internal/validation"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers middleware and all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, logger *log.Logger, todos repo.TodoRepo) {
	m := metrics.NewHTTP()
	r.Use(requestID(), requestLogger(logger), m.Middleware(), handlers.Recovery())

	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	todoSvc := service.NewTodoService(todos, validation.New(time.Now))
	todoHandler := handlers.NewTodoHandler(todoSvc)
	registerTodoRoutes(r, todoHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Todo API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"metrics": "/metrics",
			"api":     "/todo",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env, "store": cfg.Store.Driver})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerTodoRoutes(r gin.IRoutes, h *handlers.TodoHandler) {
	r.GET("/todo", h.List)
	r.POST("/todo", h.Create)
	r.GET("/todo/:id", h.GetByID)
	r.PUT("/todo/:id", h.Replace)
	r.PATCH("/todo/:id", h.Patch)
	r.DELETE("/todo/:id", h.Delete)
}
