package main

import (
	"Gin_postgres_redis_library_lending/app"
	"Gin_postgres_redis_library_lending/config"
	"Gin_postgres_redis_library_lending/db"
	"Gin_postgres_redis_library_lending/routes"
	"context"
	"log"
	"os"
)

func main() {
	config.LoadEnv()
	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	app.SeedSampleData(context.Background(), db.NewRepo(application.DB))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}
