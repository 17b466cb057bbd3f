package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Roles del historial de chat tal como los envia el frontend.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrDisabled      = errors.New("llm disabled")
	ErrEmptyResponse = errors.New("llm empty response")
)

// Message es un turno de conversacion.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMClient define la interfaz para generar respuestas con un LLM.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Chat(ctx context.Context, history []Message) (string, error)
}

// GeminiClient implementa LLMClient sobre la API de Gemini.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *zap.Logger
}

// NewGeminiClient construye el cliente; la API key llega siempre por configuracion.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrDisabled
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.logger.Warn("gemini generate failed", zap.Error(err))
		return "", fmt.Errorf("generate content: %w", err)
	}
	return responseText(resp)
}

// Chat envia el ultimo turno con el resto como historial. El rol assistant se traduce a model.
func (g *GeminiClient) Chat(ctx context.Context, history []Message) (string, error) {
	if len(history) == 0 {
		return "", errors.New("empty conversation")
	}
	last := history[len(history)-1]
	if last.Role == RoleAssistant {
		return "", errors.New("last turn must be a user message")
	}
	cs := g.model.StartChat()
	cs.History = ToContents(history[:len(history)-1])

	resp, err := cs.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		g.logger.Warn("gemini chat failed", zap.Error(err), zap.Int("turns", len(history)))
		return "", fmt.Errorf("send message: %w", err)
	}
	return responseText(resp)
}

// ToContents convierte el historial al formato de Gemini.
func ToContents(history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := RoleUser
		if m.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return contents
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

type disabledClient struct{}

// NewDisabledClient devuelve un cliente que siempre falla con ErrDisabled.
func NewDisabledClient() LLMClient {
	return disabledClient{}
}

func (disabledClient) Generate(context.Context, string) (string, error) {
	return "", ErrDisabled
}

func (disabledClient) Chat(context.Context, []Message) (string, error) {
	return "", ErrDisabled
}
