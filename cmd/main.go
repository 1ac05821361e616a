package main

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"dashboard-service/internal/api"
	"dashboard-service/internal/client"
	"dashboard-service/internal/config"
	"dashboard-service/internal/notify"
	"dashboard-service/internal/service"
	"dashboard-service/internal/session"
)

func main() {
	cfg := config.Load()

	center := notify.NewCenter()
	remote := client.New(cfg.APIBaseURL, notify.CtxNotifier{Center: center})

	var cartStore service.CartStore = service.NewMemoryCartStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		cartStore = service.NewRedisCartStore(rdb)
	}

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, "admin-activity")
	events := service.NewEventPublisher(kafkaWriter)

	crudService := service.NewCrudService(remote, center, events)
	cartService := service.NewCartService(cartStore, center, remote, events)
	chatService := service.NewChatService(remote)

	dashboardHandler := api.NewDashboardHandler(crudService, cartService, chatService, center)
	cartHandler := api.NewCartHandler(cartService)
	chatHandler := api.NewChatHandler(chatService)
	authHandler := api.NewAuthHandler(center)

	sessions := session.NewManager(cfg.JWTSecret)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     60,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))
	e.Use(sessions.Middleware())

	e.GET("/", dashboardHandler.Home)
	e.GET("/sections/:section", dashboardHandler.Section)
	e.GET("/partials/cart", cartHandler.Partial)
	e.GET("/partials/chat", chatHandler.Partial)
	e.GET("/partials/:kind/table", dashboardHandler.TablePartial)
	e.GET("/partials/:kind/options", dashboardHandler.OptionsPartial)
	e.GET("/partials/:kind/form", dashboardHandler.FormPartial)

	e.POST("/entities/:kind", dashboardHandler.Save)
	e.POST("/entities/:kind/:id/delete", dashboardHandler.StageDelete)
	e.POST("/deletions/confirm", dashboardHandler.ConfirmDelete)
	e.POST("/deletions/cancel", dashboardHandler.CancelDelete)
	e.POST("/forms/close", dashboardHandler.CloseForm)
	e.POST("/notifications/:id/dismiss", dashboardHandler.DismissNotification)

	e.POST("/cart/items", cartHandler.Add)
	e.POST("/cart/stage/:id/increase", cartHandler.StageIncrease)
	e.POST("/cart/stage/:id/decrease", cartHandler.StageDecrease)
	e.POST("/cart/items/:id/increase", cartHandler.Increase)
	e.POST("/cart/items/:id/decrease", cartHandler.Decrease)
	e.POST("/cart/items/:id/remove", cartHandler.Remove)
	e.POST("/cart/checkout", cartHandler.Checkout)

	e.POST("/chat/messages", chatHandler.Send)
	e.POST("/login", authHandler.Login)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "dashboard-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(cfg.ListenAddr))
}
