package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/chi-demo/middleware"

	"github.com/tendant/gokaru-go/pkg/gokaru"
	"github.com/tendant/gokaru-go/pkg/gokaru/api"
	"github.com/tendant/gokaru-go/pkg/gokaru/config"
)

type Config struct {
	Gokaru       config.Config
	ApiKeySHA256 string `env:"API_KEY_SHA256" env-description:"SHA-256 of the API key; empty disables API key checks"`
	JWTSecret    string `env:"JWT_SECRET" env-description:"HS256 secret; when set every API request needs a bearer token"`
	Metrics      bool   `env:"METRICS_ENABLED" env-default:"true"`
}

// routes mounts the signing API, and /metrics when enabled, on r.
func routes(r chi.Router, cfg Config, client *gokaru.Client) error {
	if cfg.Metrics {
		api.InitMetrics()
		r.Handle("/metrics", promhttp.Handler())
	}

	var middlewares []func(http.Handler) http.Handler
	if cfg.ApiKeySHA256 != "" {
		apiKeyMiddleware, err := middleware.ApiKeyMiddleware(middleware.ApiKeyConfig{
			APIKeys: map[string]string{
				"key1": cfg.ApiKeySHA256,
			},
		})
		if err != nil {
			return err
		}
		middlewares = append(middlewares, apiKeyMiddleware)
	}
	if cfg.JWTSecret != "" {
		tokenAuth := jwtauth.New("HS256", []byte(cfg.JWTSecret), nil)
		middlewares = append(middlewares, jwtauth.Verifier(tokenAuth), jwtauth.Authenticator)
	}

	handler := api.NewHandler(client)
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middlewares...)
			r.Mount("/gokaru", handler.Routes())
		})
	})
	return nil
}

func main() {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	client, err := cfg.Gokaru.NewClient(context.Background())
	if err != nil {
		slog.Error("Failed to create gokaru client", "err", err)
		os.Exit(1)
	}

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	if err := routes(server.R, cfg, client); err != nil {
		slog.Error("Failed to initialize routes", "err", err)
		os.Exit(1)
	}

	slog.Info("Starting gokaru signer", "origin", client.OriginURL(), "metrics", cfg.Metrics, "jwt", cfg.JWTSecret != "")
	server.Run()
}
