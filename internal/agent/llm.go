package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Saon110/Weather-Agentic-Ai/internal/config"
)

// Client is a minimal chat-completions client for the Groq OpenAI-compatible
// API, carrying the tool definitions the model may call.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

func NewClient(apiKey, model string, temperature float64) *Client {
	return &Client{
		apiKey:      apiKey,
		baseURL:     "https://api.groq.com/openai/v1",
		model:       model,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: config.AgentRequestTimeout},
	}
}

// Message is one chat-completions message. Tool results are sent with role
// "tool" and the originating ToolCallID.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// ToolCall is a model-requested tool invocation.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the tool name and its raw JSON arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolDefinition struct {
	Type     string `json:"type"`
	Function struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Parameters  map[string]any `json:"parameters"`
	} `json:"function"`
}

type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []Message        `json:"messages"`
	Tools       []toolDefinition `json:"tools,omitempty"`
	Temperature float64          `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
}

// Chat submits the conversation plus tool definitions and returns the model's
// next message.
func (c *Client) Chat(ctx context.Context, messages []Message, tools []Tool) (*Message, error) {
	chatReq := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Tools:       toolDefinitions(tools),
		Temperature: c.temperature,
	}

	payload, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limited by model API (429)")
	}
	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, fmt.Errorf("model API unavailable (503)")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat status %d: %s", resp.StatusCode, body)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("empty choices in response")
	}

	return &chatResp.Choices[0].Message, nil
}

// toolDefinitions converts the registry into the wire format. Every tool takes
// a single string parameter named "input", matching the dispatch contract.
func toolDefinitions(tools []Tool) []toolDefinition {
	defs := make([]toolDefinition, 0, len(tools))
	for _, t := range tools {
		var def toolDefinition
		def.Type = "function"
		def.Function.Name = t.Name
		def.Function.Description = t.Description
		def.Function.Parameters = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"input": map[string]any{
					"type":        "string",
					"description": "Tool input string.",
				},
			},
			"required": []string{"input"},
		}
		defs = append(defs, def)
	}
	return defs
}
