package classifier

import "context"

// Completer is the capability boundary to the external text-completion
// service. The classifier never depends on a concrete provider; anything
// that can answer a prompt can back it.
type Completer interface {
	// Complete sends the prompt and returns the raw response text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// MockCompleter implements Completer for tests, returning canned output.
type MockCompleter struct {
	Response string
	Err      error
	// Prompts records every prompt received, for assertion in tests.
	Prompts []string
}

// Complete returns the predefined response or error.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
