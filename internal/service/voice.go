package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/Saon110/Weather-Agentic-Ai/internal/config"
	"github.com/Saon110/Weather-Agentic-Ai/internal/domain"
)

const transcriptionModel = "whisper-large-v3"

// VoiceService wraps the two speech capabilities: transcribing captured audio
// via the Groq Whisper endpoint and synthesizing speech via ElevenLabs.
type VoiceService struct {
	groqKey       string
	elevenKey     string
	voiceID       string
	voiceModelID  string
	transcribeURL string
	speakURL      string
	httpClient    *http.Client
}

func NewVoiceService(cfg *config.Config) *VoiceService {
	return &VoiceService{
		groqKey:       cfg.GroqKey,
		elevenKey:     cfg.ElevenLabsKey,
		voiceID:       cfg.ElevenLabsVoiceID,
		voiceModelID:  cfg.ElevenLabsModelID,
		transcribeURL: "https://api.groq.com/openai/v1/audio/transcriptions",
		speakURL:      "https://api.elevenlabs.io/v1/text-to-speech",
		httpClient:    &http.Client{Timeout: config.VoiceRequestTimeout},
	}
}

// Transcribe converts captured audio to text. Failures never propagate as
// errors: the result is a string carrying the error marker prefix, which the
// presentation layer surfaces to the user as-is.
func (s *VoiceService) Transcribe(ctx context.Context, audio []byte, filename string) string {
	text, err := s.transcribe(ctx, audio, filename)
	if err != nil {
		slog.Error("transcription failed", "error", err)
		return config.TranscriptionErrorPrefix + "Could not transcribe audio: " + err.Error()
	}
	if text == "" {
		return config.TranscriptionErrorPrefix + "Could not understand the audio."
	}
	return text
}

func (s *VoiceService) transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	if err := w.WriteField("model", transcriptionModel); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.transcribeURL, &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.groqKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("transcription status %d: %s", resp.StatusCode, body)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return result.Text, nil
}

// Speak synthesizes the text into audio bytes (mp3). Callers treat a failure
// as non-fatal: the text answer still renders without the voice reply.
func (s *VoiceService) Speak(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, nil
	}

	payload, err := json.Marshal(map[string]string{
		"text":     text,
		"model_id": s.voiceModelID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", domain.ErrSpeechSynthesis, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.speakURL+"/"+s.voiceID, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrSpeechSynthesis, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.elevenKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSpeechSynthesis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrSpeechSynthesis, resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read audio: %v", domain.ErrSpeechSynthesis, err)
	}
	return audio, nil
}
