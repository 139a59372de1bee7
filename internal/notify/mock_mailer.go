package notify

import (
	"sync"
)

// SentEmail is one message captured by MockMailer.
type SentEmail struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer records messages instead of sending them. Setting Err makes every
// Send fail with it.
type MockMailer struct {
	mu   sync.RWMutex
	sent []SentEmail
	Err  error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.sent = append(m.sent, SentEmail{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

// Sent returns a copy of the captured messages.
func (m *MockMailer) Sent() []SentEmail {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sent := make([]SentEmail, len(m.sent))
	copy(sent, m.sent)
	return sent
}
