package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Core
	BotToken    string `env:"BOT_TOKEN,required"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Weather data
	OpenWeatherKey string `env:"OPENWEATHERMAP_API_KEY,required"`

	// Agent
	GroqKey          string  `env:"GROQ_API_KEY,required"`
	AgentModel       string  `env:"AGENT_MODEL" envDefault:"qwen-qwq-32b"`
	AgentTemperature float64 `env:"AGENT_TEMPERATURE" envDefault:"0.4"`

	// Voice
	ElevenLabsKey     string `env:"ELEVENLABS_API_KEY"`
	ElevenLabsVoiceID string `env:"ELEVENLABS_VOICE_ID" envDefault:"21m00Tcm4TlvDq8ikWAM"`
	ElevenLabsModelID string `env:"ELEVENLABS_MODEL_ID" envDefault:"eleven_monolingual_v1"`
	VoiceReplies      bool   `env:"VOICE_REPLIES" envDefault:"true"`
	MaxVoiceSeconds   int    `env:"MAX_VOICE_SECONDS" envDefault:"10"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// VoiceEnabled reports whether spoken replies can be produced at all.
func (c *Config) VoiceEnabled() bool {
	return c.VoiceReplies && c.ElevenLabsKey != ""
}
