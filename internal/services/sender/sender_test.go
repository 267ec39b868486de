package sender

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/coffrefort/internal/lib/smtp"
	"github.com/magabrotheeeer/coffrefort/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

type captureWriter struct {
	data []byte
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *captureWriter) Close() error { return nil }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSendWelcome(t *testing.T) {
	body, err := json.Marshal(models.WelcomeNotification{
		Email:     "awa@example.com",
		FirstName: "Awa",
		LastName:  "Diop",
	})
	assert.NoError(t, err)

	t.Run("welcome mail goes to the registered address without credentials", func(t *testing.T) {
		transport := new(MockTransport)
		client := new(MockSMTPClient)
		writer := &captureWriter{}

		transport.On("GetSMTPUser").Return("noreply@coffrefort.example.com")
		transport.On("Connect").Return(client, nil)
		client.On("Mail", "noreply@coffrefort.example.com").Return(nil)
		client.On("Rcpt", "awa@example.com").Return(nil)
		client.On("Data").Return(writer, nil)
		client.On("Quit").Return(nil)
		client.On("Close").Return(nil)

		service := NewSenderService(newNoopLogger(), transport)
		assert.NoError(t, service.SendWelcome(body))

		sent := string(writer.data)
		assert.Contains(t, sent, "Bienvenue sur CoffreFort")
		assert.Contains(t, sent, "Awa Diop")
		assert.NotContains(t, sent, "password")
		assert.NotContains(t, sent, "mot de passe")
		client.AssertExpectations(t)
	})

	t.Run("malformed message is rejected", func(t *testing.T) {
		service := NewSenderService(newNoopLogger(), new(MockTransport))
		assert.Error(t, service.SendWelcome([]byte("not a json")))
	})

	t.Run("connect failure is surfaced", func(t *testing.T) {
		transport := new(MockTransport)
		transport.On("GetSMTPUser").Return("noreply@coffrefort.example.com")
		transport.On("Connect").Return(nil, errors.New("smtp down"))

		service := NewSenderService(newNoopLogger(), transport)
		assert.Error(t, service.SendWelcome(body))
	})
}
