package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response    string
	Err         error
	LastPrompt  string
	LastHistory []Message
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	return m.Response, m.Err
}

func (m *MockClient) Chat(ctx context.Context, history []Message) (string, error) {
	m.LastHistory = history
	return m.Response, m.Err
}
