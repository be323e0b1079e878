package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Probe    Probe
	Metrics  Metrics
	Log      Log
	Backend  Backend
	UrbanAPI UrbanAPI
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"floor-predictor-api"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.Backend.validate(); err != nil {
		return Config{}, fmt.Errorf("backend config: %w", err)
	}

	return config, nil
}
