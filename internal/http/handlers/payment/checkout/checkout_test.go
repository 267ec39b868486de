package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/coffrefort/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coffrefort/internal/http/response"
	"github.com/magabrotheeeer/coffrefort/internal/models"
)

type PaymentServiceMock struct {
	mock.Mock
}

func (m *PaymentServiceMock) InitiateCheckout(ctx context.Context, user *models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCheckoutHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()
	user := &models.User{Email: "payer@example.com", FirstName: "Awa", LastName: "Diop"}

	tests := []struct {
		name           string
		ctxUser        *models.User
		mockURL        string
		mockErr        error
		wantStatusCode int
		wantLocation   string
		wantError      string
	}{
		{
			name:           "checkout redirects to payment page",
			ctxUser:        user,
			mockURL:        "https://checkout.example.com/pay/tx-1",
			wantStatusCode: http.StatusSeeOther,
			wantLocation:   "https://checkout.example.com/pay/tx-1",
		},
		{
			name:           "provider failure",
			ctxUser:        user,
			mockErr:        errors.New("provider unavailable"),
			wantStatusCode: http.StatusBadGateway,
			wantError:      "failed to initiate checkout",
		},
		{
			name:           "missing user in context",
			ctxUser:        nil,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(PaymentServiceMock)
			handler := New(logger, serviceMock)

			serviceMock.On("InitiateCheckout", mock.Anything, tt.ctxUser).
				Return(tt.mockURL, tt.mockErr)

			req := httptest.NewRequest(http.MethodPost, "/payment", nil)
			if tt.ctxUser != nil {
				ctx := context.WithValue(req.Context(), middlewarectx.CurrentUser, tt.ctxUser)
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
			}

			var resp response.Response
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			if tt.wantError != "" {
				assert.Equal(t, response.StatusError, resp.Status)
				assert.Contains(t, resp.Error, tt.wantError)
			} else {
				assert.Equal(t, response.StatusOK, resp.Status)
			}
		})
	}
}
