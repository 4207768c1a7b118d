package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Saon110/Weather-Agentic-Ai/internal/domain"
)

// ChatRepository persists chat sessions and their append-only message logs.
type ChatRepository struct {
	pool *pgxpool.Pool
}

func NewChatRepository(pool *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{pool: pool}
}

func (r *ChatRepository) CreateChat(ctx context.Context, id string, owner int64) (*domain.ChatSession, error) {
	var s domain.ChatSession
	err := r.pool.QueryRow(ctx,
		`INSERT INTO chats (id, owner) VALUES ($1, $2)
		 RETURNING id, owner, created_at`,
		id, owner,
	).Scan(&s.ID, &s.Owner, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	return &s, nil
}

func (r *ChatRepository) AppendMessage(ctx context.Context, chatID, role, content string) (*domain.ChatMessage, error) {
	var m domain.ChatMessage
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (chat_id, role, content) VALUES ($1, $2, $3)
		 RETURNING id, chat_id, role, content, created_at`,
		chatID, role, content,
	).Scan(&m.ID, &m.ChatID, &m.Role, &m.Content, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return &m, nil
}

// RecentMessages returns all messages of a chat in non-decreasing timestamp
// order. The id tie-break keeps the order stable when timestamps collide.
func (r *ChatRepository) RecentMessages(ctx context.Context, chatID string) ([]domain.ChatMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, chat_id, role, content, created_at
		 FROM messages
		 WHERE chat_id = $1
		 ORDER BY created_at, id`,
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// ListChats returns the owner's sessions, newest first.
func (r *ChatRepository) ListChats(ctx context.Context, owner int64) ([]domain.ChatSession, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, owner, created_at
		 FROM chats
		 WHERE owner = $1
		 ORDER BY created_at DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var chats []domain.ChatSession
	for rows.Next() {
		var s domain.ChatSession
		if err := rows.Scan(&s.ID, &s.Owner, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, s)
	}
	return chats, rows.Err()
}

func (r *ChatRepository) GetChat(ctx context.Context, chatID string) (*domain.ChatSession, error) {
	var s domain.ChatSession
	err := r.pool.QueryRow(ctx,
		`SELECT id, owner, created_at FROM chats WHERE id = $1`,
		chatID,
	).Scan(&s.ID, &s.Owner, &s.CreatedAt)
	if err != nil {
		return nil, domain.ErrChatNotFound
	}
	return &s, nil
}

// DeleteChat removes a session. Its messages go with it via ON DELETE CASCADE,
// so the removal is atomic from the caller's perspective.
func (r *ChatRepository) DeleteChat(ctx context.Context, chatID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM chats WHERE id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChatNotFound
	}
	return nil
}
