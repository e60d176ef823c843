package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/chat"
	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/config"
	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/database"
	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/directory"
	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/handlers"
	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/notify"
	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/routes"
	ws "github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/websocket"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	gin.SetMode(cfg.GinMode)

	// Mongo with retry; cold-started databases need a moment.
	var db *database.DB
	for attempt := 1; attempt <= 3; attempt++ {
		db, err = database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
		if err == nil {
			break
		}
		logger.Warn("mongodb connection attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer db.Disconnect(context.Background())
	logger.Info("mongodb connected", zap.String("database", cfg.MongoDatabase))

	if err := db.EnsureIndexes(context.Background()); err != nil {
		logger.Fatal("failed to create indexes", zap.Error(err))
	}

	// Notification transports are optional: email needs SMTP config,
	// web push needs VAPID keys (generated for dev when absent).
	var notifiers notify.Multi
	if cfg.SMTPHost != "" {
		notifiers = append(notifiers, notify.NewEmailNotifier(
			cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom))
	}
	if cfg.VAPIDPublicKey == "" || cfg.VAPIDPrivateKey == "" {
		privateKey, publicKey, keyErr := webpush.GenerateVAPIDKeys()
		if keyErr != nil {
			logger.Warn("failed to generate VAPID keys, web push disabled", zap.Error(keyErr))
		} else {
			cfg.VAPIDPrivateKey, cfg.VAPIDPublicKey = privateKey, publicKey
			logger.Warn("generated ephemeral VAPID keys; set VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY in production",
				zap.String("publicKey", publicKey))
		}
	}
	var pushNotifier *notify.WebPushNotifier
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		pushNotifier = notify.NewWebPushNotifier(db.PushSubs, cfg.VAPIDSubscriber, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
		notifiers = append(notifiers, pushNotifier)
	}
	var notifier notify.Notifier
	if len(notifiers) > 0 {
		notifier = notifiers
	}

	service := chat.NewService(chat.ServiceConfig{
		Conversations: chat.NewMongoConversationStore(db.Conversations),
		Messages:      chat.NewMongoMessageStore(db.Messages),
		Directory:     directory.NewMongo(db.Users, db.Sellers),
		Notifier:      notifier,
		AppBaseURL:    cfg.AppBaseURL,
		Logger:        logger,
	})

	hub := ws.NewHub(service, logger)

	var pushHandler *handlers.PushHandler
	if pushNotifier != nil {
		pushHandler = handlers.NewPushHandler(pushNotifier, logger)
	}

	router := routes.SetupRouter(routes.Deps{
		Chat:         handlers.NewHandler(service, logger),
		Push:         pushHandler,
		JWTSecret:    cfg.JWTSecret,
		AllowOrigins: cfg.AllowOrigins,
	})

	router.GET("/ws", func(c *gin.Context) {
		ws.Handler(hub)(c.Writer, c.Request)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
