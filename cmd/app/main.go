package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"meetspot/cmd/fx/completion_fx"
	"meetspot/cmd/fx/maps_fx"
	"meetspot/cmd/fx/meetup_fx"
	"meetspot/cmd/fx/session_fx"
	"meetspot/internal/api/controllers"
	"meetspot/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}

	app := fx.New(
		completion_fx.Module,
		maps_fx.Module,
		session_fx.Module,
		meetup_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			go func() {
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(meetupController *controllers.MeetupController) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, meetupController)

	return r
}

func RegisterRoutes(r *gin.Engine, meetupController *controllers.MeetupController) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	meetups := r.Group("/meetups")
	meetups.POST("/search", meetupController.SearchHandler)
	meetups.POST("/followup", meetupController.FollowupHandler)
	meetups.GET("/sessions/:id", meetupController.GetSessionHandler)
}
