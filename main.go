package main

import (
	"log"

	"github.com/Phenoo/bookkeep-server/config"
	"github.com/Phenoo/bookkeep-server/internal/handler"
	"github.com/Phenoo/bookkeep-server/internal/middleware"
	"github.com/Phenoo/bookkeep-server/internal/repository"
	"github.com/Phenoo/bookkeep-server/internal/service"
	"github.com/Phenoo/bookkeep-server/internal/validation"
	"github.com/Phenoo/bookkeep-server/pkg/database"
	"github.com/Phenoo/bookkeep-server/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ publisher: booking lifecycle events for downstream reporting
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RABBIT_URL not set, event publishing disabled")
	}

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Service
	bookingSvc := service.NewBookingService(bookingRepo, propertyRepo, activityRepo, saleRepo, publisher)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = validation.New()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "bookkeep-server"})
	})

	api := e.Group("/api/v1", middleware.JWTAuth(cfg.JWTSecret))
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api)
	handler.NewPropertyHandler(propertyRepo).RegisterRoutes(api)
	handler.NewActivityHandler(activityRepo, saleRepo).RegisterRoutes(api)

	log.Printf("bookkeep-server starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
