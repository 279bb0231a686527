package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env                 string
	DiscordToken        string
	DiscordGuildID      string
	CommandPrefix       string
	DatabaseURL         string
	QuizTimeoutSec      int
	FactSourceURL       string
	PresenceRotationMin int
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.QuizTimeoutSec <= 0 {
		return fmt.Errorf("QUIZ_TIMEOUT_SEC must be positive, got %d", c.QuizTimeoutSec)
	}
	if c.PresenceRotationMin <= 0 {
		return fmt.Errorf("PRESENCE_ROTATION_MIN must be positive, got %d", c.PresenceRotationMin)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "DISCORD_TOKEN", value: c.DiscordToken},
		{name: "COMMAND_PREFIX", value: c.CommandPrefix},
		{name: "FACT_SOURCE_URL", value: c.FactSourceURL},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) QuizTimeout() time.Duration {
	return time.Duration(c.QuizTimeoutSec) * time.Second
}

func (c *Config) PresenceRotationInterval() time.Duration {
	return time.Duration(c.PresenceRotationMin) * time.Minute
}
