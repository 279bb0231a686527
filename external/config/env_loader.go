package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	internalconfig "github.com/starfieldlab/cosmobot/internal/config"
)

type envConfig struct {
	Env                 string `env:"ENV" envDefault:"production"`
	DiscordToken        string `env:"DISCORD_TOKEN,required"`
	DiscordGuildID      string `env:"DISCORD_GUILD_ID"`
	CommandPrefix       string `env:"COMMAND_PREFIX" envDefault:">>"`
	DatabaseURL         string `env:"DATABASE_URL"`
	QuizTimeoutSec      int    `env:"QUIZ_TIMEOUT_SEC" envDefault:"60"`
	FactSourceURL       string `env:"FACT_SOURCE_URL" envDefault:"https://fungenerators.com/random/facts/space"`
	PresenceRotationMin int    `env:"PRESENCE_ROTATION_MIN" envDefault:"2"`
}

func Load() (*internalconfig.Config, error) {
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                 raw.Env,
		DiscordToken:        raw.DiscordToken,
		DiscordGuildID:      raw.DiscordGuildID,
		CommandPrefix:       raw.CommandPrefix,
		DatabaseURL:         raw.DatabaseURL,
		QuizTimeoutSec:      raw.QuizTimeoutSec,
		FactSourceURL:       raw.FactSourceURL,
		PresenceRotationMin: raw.PresenceRotationMin,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
