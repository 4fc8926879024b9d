package main

import (
	"context"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"log"
	"os"
	"tourway/cmd/fx/account_fx"
	"tourway/cmd/fx/ai_fx"
	"tourway/cmd/fx/controllers_fx"
	"tourway/cmd/fx/db_fx"
	"tourway/cmd/fx/tour_fx"
	"tourway/internal/api/controllers"
	"tourway/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	app := fx.New(
		db_fx.Module,
		account_fx.Module,
		ai_fx.Module,
		tour_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
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

func ProvideRouter(
	accountController *controllers.AccountController,
	tourController *controllers.TourController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, tourController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	tourController *controllers.TourController) {

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/register", accountController.Register)
	accountGroup.POST("/login", accountController.Login)

	tourGroup := r.Group("/tours")
	tourGroup.Use(middleware.JWTAuthMiddleware())
	tourGroup.POST("/create", tourController.CreateTour)
	tourGroup.GET("/get-by-user", tourController.GetToursByUserId)
	tourGroup.GET("/:tourId", tourController.GetTourById)
	tourGroup.GET("/:tourId/transportations", tourController.GetTransportations)
	tourGroup.GET("/:tourId/places-to-visit", tourController.GetPlacesToVisit)
	tourGroup.GET("/:tourId/places-to-stay", tourController.GetPlacesToStay)
	tourGroup.PUT("/places-to-visit/day-visits", tourController.UpdateDayVisits)
	tourGroup.PUT("/places-to-stay/selection", tourController.UpdateStaySelections)
	tourGroup.PUT("/transportations/swap", tourController.SwapTransportation)
}
