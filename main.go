package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"submarine-api/conf"
	"submarine-api/router"
	"submarine-api/scheduler"
)

func main() {
	c := conf.Get()

	app := fiber.New()
	router.SetupRoutes(app)

	runner := scheduler.NewRunner(scheduler.NewAutoStopTask(c))
	runner.Start(context.Background())
	defer runner.Stop()

	log.Fatal(app.Listen(c.ListenAddr))
}
