package azauth_test

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/stretchr/testify/mock"
)

// MockConfig implements azauth.Config
type MockConfig struct {
	mock.Mock
}

func (m *MockConfig) GetBaseURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetUserAgent() string {
	args := m.Called()
	return args.String(0)
}

// MockLogger implements azauth.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {}
func (m *MockLogger) Info(format string, args ...any)  {}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

type logCall struct {
	level   string
	message string
}

// captureLogger records formatted messages.
type captureLogger struct {
	mu    sync.Mutex
	calls []logCall
}

func (c *captureLogger) record(level, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, logCall{level: level, message: fmt.Sprintf(format, args...)})
}

func (c *captureLogger) Debug(format string, args ...any) { c.record("debug", format, args...) }
func (c *captureLogger) Info(format string, args ...any)  { c.record("info", format, args...) }
func (c *captureLogger) Warn(format string, args ...any)  { c.record("warn", format, args...) }
func (c *captureLogger) Error(format string, args ...any) { c.record("error", format, args...) }

func (c *captureLogger) messages(level string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, call := range c.calls {
		if call.level == level {
			out = append(out, call.message)
		}
	}
	return out
}

// countingTransport counts round trips before handing them to next.
type countingTransport struct {
	calls atomic.Int64
	next  http.RoundTripper
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls.Add(1)
	if t.next == nil {
		return nil, fmt.Errorf("unexpected request to %s", req.URL)
	}
	return t.next.RoundTrip(req)
}
