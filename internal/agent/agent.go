// Package agent converts free-text weather questions into zero or more tool
// invocations and a final natural-language answer.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Saon110/Weather-Agentic-Ai/internal/config"
	"github.com/Saon110/Weather-Agentic-Ai/internal/domain"
)

// systemPrompt is prepended to every user question.
const systemPrompt = "You are a helpful and knowledgeable weather assistant. " +
	"You answer weather-related queries using accurate data, avoid making things up, " +
	"and explain clearly. Use metric units (°C, km/h, mm). If information is unavailable, say so directly. " +
	"Now answer the question: "

// Agent runs the tool-calling loop against the model. This is the only place
// non-determinism enters the system: the same question may produce different
// tool-call sequences across runs.
type Agent struct {
	llm           *Client
	tools         []Tool
	byName        map[string]Tool
	maxIterations int
}

func New(llm *Client, tools []Tool) *Agent {
	byName := make(map[string]Tool, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
	}
	return &Agent{
		llm:           llm,
		tools:         tools,
		byName:        byName,
		maxIterations: config.MaxToolIterations,
	}
}

// Answer resolves a free-text question to a final natural-language answer,
// dispatching tool calls requested by the model along the way. The loop is
// bounded by the configured maximum iteration count.
func (a *Agent) Answer(ctx context.Context, userText string) (string, error) {
	messages := []Message{
		{Role: "user", Content: systemPrompt + userText},
	}

	for i := 0; i < a.maxIterations; i++ {
		msg, err := a.llm.Chat(ctx, messages, a.tools)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrOrchestration, err)
		}
		messages = append(messages, *msg)

		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		for _, call := range msg.ToolCalls {
			result := a.dispatch(ctx, call)
			messages = append(messages, Message{
				Role:       "tool",
				ToolCallID: call.ID,
				Name:       call.Function.Name,
				Content:    result,
			})
		}
	}

	return "", fmt.Errorf("%w: no final answer after %d iterations", domain.ErrOrchestration, a.maxIterations)
}

// dispatch executes one requested tool call. Tool failures are reported back
// to the model as plain text so it can tell the user the data is unavailable.
func (a *Agent) dispatch(ctx context.Context, call ToolCall) string {
	tool, ok := a.byName[call.Function.Name]
	if !ok {
		return fmt.Sprintf("error: unknown tool %q", call.Function.Name)
	}

	input := parseToolInput(call.Function.Arguments)
	slog.Info("dispatching tool", "tool", tool.Name, "input", input)

	result, err := tool.Call(ctx, input)
	if err != nil {
		slog.Warn("tool call failed", "tool", tool.Name, "error", err)
		return "error: " + err.Error()
	}
	return result
}

// parseToolInput extracts the single string argument. Models occasionally emit
// a bare string instead of the {"input": ...} object; both forms are accepted.
func parseToolInput(arguments string) string {
	var args struct {
		Input string `json:"input"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err == nil && args.Input != "" {
		return args.Input
	}
	var bare string
	if err := json.Unmarshal([]byte(arguments), &bare); err == nil {
		return bare
	}
	return strings.TrimSpace(arguments)
}
