package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/neozeit/dmarcscope/internal/logger"
	"github.com/neozeit/dmarcscope/internal/tracing"
)

type Config struct {
	AppConfig     *AppConfig
	Logger        *logger.Config
	Tracing       *tracing.JaegerConfig
	ElasticConfig *ElasticConfig
	ReportConfig  *ReportConfig
	ArchiveConfig *ArchiveConfig
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:     &AppConfig{},
		Logger:        &logger.Config{},
		Tracing:       &tracing.JaegerConfig{},
		ElasticConfig: &ElasticConfig{},
		ReportConfig:  &ReportConfig{},
		ArchiveConfig: &ArchiveConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		log.Fatalf("Error loading dmarcscope config: %v", err)
	}

	return config, nil
}
