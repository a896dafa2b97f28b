package main

import (
	"fmt"

	log "github.com/charmbracelet/log"

	"github.com/wayfarer-app/wayfarer/infra/initializer"
	"github.com/wayfarer-app/wayfarer/pkg/config"
	"github.com/wayfarer-app/wayfarer/webapi"
	"github.com/wayfarer-app/wayfarer/webapi/currency"
	"github.com/wayfarer-app/wayfarer/webapi/trip"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	app := webapi.New(cfg, deps.RateProvider)
	currency.Routes(app, deps.Resolver)
	trip.Routes(app, deps.TripSvc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	return app.Listen(addr)
}
