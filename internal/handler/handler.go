package handler

import (
	"sync"

	"github.com/go-telegram/bot"

	"github.com/Saon110/Weather-Agentic-Ai/internal/agent"
	"github.com/Saon110/Weather-Agentic-Ai/internal/config"
	"github.com/Saon110/Weather-Agentic-Ai/internal/service"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot         *bot.Bot
	cfg         *config.Config
	chatService *service.ChatService
	voice       *service.VoiceService
	agent       *agent.Agent
	state       *viewState
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	Cfg         *config.Config
	ChatService *service.ChatService
	Voice       *service.VoiceService
	Agent       *agent.Agent
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:         deps.Bot,
		cfg:         deps.Cfg,
		chatService: deps.ChatService,
		voice:       deps.Voice,
		agent:       deps.Agent,
		state:       newViewState(),
	}
}

// viewState is the presentation layer's session state: which persisted chat
// each Telegram conversation currently has selected. It is the only mutable
// state outside the database and lives here, not in a global.
type viewState struct {
	mu     sync.Mutex
	active map[int64]string
}

func newViewState() *viewState {
	return &viewState{active: make(map[int64]string)}
}

func (v *viewState) activeChat(tgChatID int64) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	id, ok := v.active[tgChatID]
	return id, ok
}

func (v *viewState) setActive(tgChatID int64, chatID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active[tgChatID] = chatID
}

// clearActiveIf drops the selection only when it still points at chatID, so a
// delete of a non-selected chat does not clobber the selection.
func (v *viewState) clearActiveIf(tgChatID int64, chatID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.active[tgChatID] == chatID {
		delete(v.active, tgChatID)
	}
}
