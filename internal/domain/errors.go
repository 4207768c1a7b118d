package domain

import "errors"

var (
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrCityNotFound        = errors.New("city not found")
	ErrWeatherFetch        = errors.New("weather fetch failed")
	ErrChatNotFound        = errors.New("chat session not found")
	ErrOrchestration       = errors.New("agent orchestration failed")
	ErrSpeechSynthesis     = errors.New("speech synthesis failed")
)
