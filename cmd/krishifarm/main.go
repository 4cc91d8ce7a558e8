package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"krishifarm/internal/config"
	"krishifarm/internal/http/handlers"
	applog "krishifarm/internal/log"
	"krishifarm/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "message": "Server error",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New()) // the frontend is served from its own origin
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.limit.hit")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db)

	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("Krishi Farm is running") })

	// Users
	app.Post("/users", deps.UserHandler.Upsert)

	// Catalog
	app.Get("/latestCrops", deps.CropHandler.Latest)
	app.Get("/crops", deps.CropHandler.Browse)
	app.Get("/cropCategories", deps.CropHandler.Categories)
	app.Get("/crops/:id", deps.CropHandler.Detail)

	// Listings
	app.Post("/crops", deps.ListingHandler.Create)
	app.Get("/myCrops", deps.ListingHandler.Mine)
	app.Patch("/myCrops/:id", deps.ListingHandler.Update)
	app.Delete("/myCrops/:id", deps.ListingHandler.Delete)

	// Interests
	app.Post("/crops/:id/interests", deps.InterestHandler.Submit)
	app.Patch("/interests/:id", deps.InterestHandler.Decide)
	app.Get("/myInterests", deps.InterestHandler.Mine)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
