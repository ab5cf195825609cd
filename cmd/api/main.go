package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"nam3land/internal/config"
	"nam3land/internal/database"
	"nam3land/internal/middleware"
	"nam3land/internal/modules/admin"
	"nam3land/internal/modules/auth"
	"nam3land/internal/modules/chat"
	"nam3land/internal/modules/metrics"
	"nam3land/internal/modules/notification"
	"nam3land/internal/modules/property"
	"nam3land/internal/modules/reservation"
	jwtsvc "nam3land/internal/pkg/jwt"
	"nam3land/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notificationRepo := notification.NewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	hub := chat.NewHub()
	defer hub.Close()
	chatService := chat.NewService(chatRepo, userRepo, propertyRepo, notificationService)
	chatHandler := chat.NewHandler(chatService, hub, j)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	propertyService := property.NewService(propertyRepo, userRepo)
	propertyHandler := property.NewHandler(propertyService)

	reservationService := reservation.NewService(reservationRepo, propertyRepo, notificationService, chatService)
	reservationHandler := reservation.NewHandler(reservationService)

	adminService := admin.NewService(userRepo)
	adminHandler := admin.NewHandler(adminService)

	metricsService := metrics.NewService(reservationRepo, propertyRepo, userRepo, chatRepo, notificationRepo)
	metricsHandler := metrics.NewHandler(metricsService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		propertyHandler.RegisterPublicRoutes(v1)

		// authenticated
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			reservationHandler.RegisterCustomerRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			metricsHandler.RegisterRoutes(protected)

			agentGroup := protected.Group("/agent")
			agentGroup.Use(middleware.AgentOnly())
			{
				reservationHandler.RegisterAgentRoutes(agentGroup)
			}

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			{
				reservationHandler.RegisterAdminRoutes(adminGroup)
				propertyHandler.RegisterAdminRoutes(adminGroup)
				adminHandler.RegisterRoutes(adminGroup)
				metricsHandler.RegisterAdminRoutes(adminGroup)
			}
		}
	}

	// Websocket auth rides in the query string, not the Authorization header.
	r.GET("/ws/chat", chatHandler.HandleWebSocket)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
