// main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/JasonLinn/bnb-breakfast/controllers"
	"github.com/JasonLinn/bnb-breakfast/events"
	"github.com/JasonLinn/bnb-breakfast/middleware"
	"github.com/JasonLinn/bnb-breakfast/routes"
	"github.com/JasonLinn/bnb-breakfast/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg := utils.LoadConfig()
	logger := utils.NewLogger(cfg.LogLevel)

	emailService, err := utils.NewEmailService(cfg, logger)
	if err != nil {
		logger.Error("mail relay setup failed", "driver", cfg.MailDriver, "err", err)
		os.Exit(1)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATSURL != "" {
		p, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			logger.Warn("order events disabled", "err", err)
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize controllers
	menuController := controllers.NewMenuController()
	orderController := controllers.NewOrderController(emailService, publisher, logger)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, menuController, orderController)
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORSMiddleware)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.MailTimeout + 5*time.Second,
	}

	go func() {
		logger.Info("server is running", "port", cfg.Port, "mail_driver", cfg.MailDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
