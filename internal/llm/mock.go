package llm

import (
	"context"
	"sync"
)

// MockClient permite tests sin llamar a un LLM real.
// Si Responses tiene elementos se consumen en orden; si se agotan se usa Response.
type MockClient struct {
	Response  string
	Err       error
	Responses []MockResponse

	mu      sync.Mutex
	Prompts []string
	Options []GenerateOptions
}

// MockResponse es una respuesta programada para una llamada.
type MockResponse struct {
	Content string
	Err     error
}

func (m *MockClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	m.Options = append(m.Options, opts)
	if len(m.Responses) > 0 {
		next := m.Responses[0]
		m.Responses = m.Responses[1:]
		return next.Content, next.Err
	}
	return m.Response, m.Err
}

// Calls devuelve cuantas veces se invoco Generate.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
