package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/handlers"
	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/middleware"
)

type Deps struct {
	Chat         *handlers.Handler
	Push         *handlers.PushHandler // nil disables the subscribe endpoint
	JWTSecret    string
	AllowOrigins []string
}

func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Buyonix chat service is running",
			"time":    time.Now().Unix(),
			"ws":      "WebSocket available at /ws",
		})
	})

	sendLimiter := middleware.NewIPRateLimiter(60, time.Minute)

	api := router.Group("/api")
	api.Use(middleware.JWTAuth(deps.JWTSecret))

	api.GET("/conversations/user/:userId", deps.Chat.ConversationsForUser)
	api.GET("/conversations/seller/:sellerId", deps.Chat.ConversationsForSeller)
	api.POST("/conversations", deps.Chat.FindOrCreateConversation)
	api.POST("/conversations/:id/read", deps.Chat.MarkRead)

	api.GET("/messages/:conversationId", deps.Chat.Messages)
	api.POST("/messages", sendLimiter.Middleware(), deps.Chat.SendMessage)

	if deps.Push != nil {
		api.POST("/push/subscribe", deps.Push.Subscribe)
	}

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"success": false,
				"message": "Endpoint not found",
				"path":    c.Request.URL.Path,
			})
		}
	})

	return router
}
