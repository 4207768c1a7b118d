package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	weatheragent "github.com/Saon110/Weather-Agentic-Ai"
	"github.com/Saon110/Weather-Agentic-Ai/internal/agent"
	"github.com/Saon110/Weather-Agentic-Ai/internal/config"
	"github.com/Saon110/Weather-Agentic-Ai/internal/handler"
	"github.com/Saon110/Weather-Agentic-Ai/internal/middleware"
	"github.com/Saon110/Weather-Agentic-Ai/internal/repository"
	"github.com/Saon110/Weather-Agentic-Ai/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(weatheragent.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize services. Clients are constructed once here and reused for
	// the lifetime of the process.
	chatRepo := repository.NewChatRepository(pool)
	chatService := service.NewChatService(chatRepo)
	locations := service.NewLocationResolver(cfg.OpenWeatherKey)
	weather := service.NewWeatherService(cfg.OpenWeatherKey, locations)
	voice := service.NewVoiceService(cfg)

	llm := agent.NewClient(cfg.GroqKey, cfg.AgentModel, cfg.AgentTemperature)
	weatherAgent := agent.New(llm, agent.WeatherTools(weather))

	// Handler pointer for use in default handler closure
	var h *handler.Handler

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			if update.Message.Voice != nil {
				h.HandleVoice(ctx, b, update)
				return
			}
			h.HandleText(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:         b,
		Cfg:         cfg,
		ChatService: chatService,
		Voice:       voice,
		Agent:       weatherAgent,
	})

	// Register command and callback handlers
	h.Register()

	// Start bot
	slog.Info("starting weather assistant bot", "model", cfg.AgentModel)
	b.Start(ctx)

	slog.Info("bot stopped gracefully")
}
