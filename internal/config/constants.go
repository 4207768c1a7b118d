package config

import "time"

const (
	// HTTP timeouts
	WeatherRequestTimeout = 15 * time.Second
	AgentRequestTimeout   = 90 * time.Second
	VoiceRequestTimeout   = 30 * time.Second

	// Agent tool-call loop bound
	MaxToolIterations = 5

	// Daily forecast day cap
	ForecastDaysCap = 7

	// Default historical window when the query names no day count
	DefaultHistoryDays = 1

	// Chats listed per /chats page
	ChatsPerPage = 5

	// Prefix marking a failed transcription result
	TranscriptionErrorPrefix = "❌ "
)
