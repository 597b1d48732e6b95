package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/content-attrs/pkg/attrmodel/api"
	"github.com/tendant/content-attrs/pkg/attrmodel/config"
)

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	registry, err := cfg.BuildRegistry()
	if err != nil {
		slog.Error("Failed to build schema registry", "err", err, "schema_file", cfg.SchemaFile)
		os.Exit(1)
	}
	slog.Info("Schemas loaded", "schemas", registry.Names(), "schema_file", cfg.SchemaFile)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	handler := api.NewSchemaHandler(registry, logger)
	server.R.Mount("/api/v1", handler.Routes())

	slog.Info("Starting attribute model server", "port", server.Config.Port)
	server.Run()
}
