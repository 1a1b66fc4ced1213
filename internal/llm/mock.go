package llm

import "context"

// MockClient is a configurable LLM client for testing.
// Set Response/Err to control what Complete returns.
type MockClient struct {
	Response string
	Err      error

	// Call tracking for assertions
	Calls []MockCall
}

type MockCall struct {
	System string
	User   string
}

func NewMockClient() *MockClient {
	return &MockClient{Response: `{"action":"NONE"}`}
}

func (c *MockClient) Complete(ctx context.Context, system, user string) (string, error) {
	c.Calls = append(c.Calls, MockCall{System: system, User: user})
	if c.Err != nil {
		return "", c.Err
	}
	return c.Response, nil
}

// Reset clears recorded calls and restores the default response.
func (c *MockClient) Reset() {
	c.Response = `{"action":"NONE"}`
	c.Err = nil
	c.Calls = nil
}
