package agent

import (
	"strings"
	"testing"

	"github.com/Saon110/Weather-Agentic-Ai/internal/service"
)

func TestWeatherTools_Registry(t *testing.T) {
	locations := service.NewLocationResolver("test-key")
	weather := service.NewWeatherService("test-key", locations)

	tools := WeatherTools(weather)
	if len(tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(tools))
	}

	wantNames := []string{"get_current_weather", "get_daily_forecast", "get_historical_weather"}
	for i, want := range wantNames {
		if tools[i].Name != want {
			t.Errorf("tool %d name = %q, want %q", i, tools[i].Name, want)
		}
		if tools[i].Description == "" || tools[i].Call == nil {
			t.Errorf("tool %q missing description or callable", tools[i].Name)
		}
	}

	// The description wording drives tool selection; the location-fallback
	// hint and the input example must stay present.
	for _, tool := range tools {
		if !strings.Contains(tool.Description, "Example:") {
			t.Errorf("tool %q description lacks an input example", tool.Name)
		}
		if !strings.Contains(tool.Description, "'None'") {
			t.Errorf("tool %q description lacks the current-location hint", tool.Name)
		}
	}
}

func TestToolDefinitions_SingleStringInput(t *testing.T) {
	defs := toolDefinitions([]Tool{{Name: "get_current_weather", Description: "desc"}})
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}

	def := defs[0]
	if def.Type != "function" || def.Function.Name != "get_current_weather" {
		t.Errorf("definition = %+v", def)
	}

	props, ok := def.Function.Parameters["properties"].(map[string]any)
	if !ok {
		t.Fatal("parameters missing properties")
	}
	if _, ok := props["input"]; !ok {
		t.Error("tool parameters must expose the single 'input' string")
	}
}
