package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"metizcare/internal/llm"
)

const maxChatTurns = 30

var (
	ErrEmptyConversation = errors.New("empty conversation")
	ErrLastTurnNotUser   = errors.New("last message must come from the user")
)

// AssistantService es el chat de skincare sobre el LLM.
type AssistantService struct {
	llmClient llm.LLMClient
	logger    *zap.Logger
}

func NewAssistantService(client llm.LLMClient, logger *zap.Logger) *AssistantService {
	if client == nil {
		client = llm.NewDisabledClient()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantService{llmClient: client, logger: logger}
}

// Chat responde al ultimo turno, que debe ser del usuario. Los turnos vacios se descartan y solo se envian los ultimos maxChatTurns.
func (s *AssistantService) Chat(ctx context.Context, history []llm.Message) (string, error) {
	turns := make([]llm.Message, 0, len(history))
	for _, m := range history {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		role := llm.RoleUser
		if strings.EqualFold(m.Role, llm.RoleAssistant) {
			role = llm.RoleAssistant
		}
		turns = append(turns, llm.Message{Role: role, Content: content})
	}
	if len(turns) == 0 {
		return "", ErrEmptyConversation
	}
	if turns[len(turns)-1].Role != llm.RoleUser {
		return "", ErrLastTurnNotUser
	}
	if len(turns) > maxChatTurns {
		turns = turns[len(turns)-maxChatTurns:]
	}

	reply, err := s.llmClient.Chat(ctx, turns)
	if err != nil {
		s.logger.Warn("assistant chat failed", zap.Error(err), zap.Int("turns", len(turns)))
		return "", fmt.Errorf("assistant chat: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
