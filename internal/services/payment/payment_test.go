package payment_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/coffrefort/internal/config"
	"github.com/magabrotheeeer/coffrefort/internal/models"
	"github.com/magabrotheeeer/coffrefort/internal/paymentprovider"
	"github.com/magabrotheeeer/coffrefort/internal/services/payment"
)

// Мок для PaymentRepository
type PaymentRepoMock struct {
	mock.Mock
}

func (m *PaymentRepoMock) CreatePendingPayment(ctx context.Context, transactionID, email, amount, currency string) (int64, error) {
	args := m.Called(ctx, transactionID, email, amount, currency)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PaymentRepoMock) ConfirmPayment(ctx context.Context, transactionID, email, amount, currency string, expiresAt time.Time) (bool, error) {
	args := m.Called(ctx, transactionID, email, amount, currency, expiresAt)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentRepoMock) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

// Мок для CheckoutClient
type CheckoutClientMock struct {
	mock.Mock
}

func (m *CheckoutClientMock) CreateCheckout(ctx context.Context, req paymentprovider.CheckoutRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func testConfig() config.CinetPay {
	return config.CinetPay{
		Amount:      "3000",
		Currency:    "XOF",
		Description: "Activation Premium CoffreFort",
		ReturnURL:   "https://coffrefort.example.com/dashboard",
		NotifyURL:   "https://coffrefort.example.com/payments/notify",
	}
}

func TestService_InitiateCheckout(t *testing.T) {
	user := &models.User{
		Email:     "payer@example.com",
		FirstName: "Awa",
		LastName:  "Diop",
		Phone:     "+221770000000",
	}

	t.Run("pending row then provider checkout", func(t *testing.T) {
		repoMock := new(PaymentRepoMock)
		clientMock := new(CheckoutClientMock)
		service := payment.New(repoMock, clientMock, testConfig(), newNoopLogger())

		repoMock.On("CreatePendingPayment", mock.Anything, mock.Anything, "payer@example.com", "3000", "XOF").
			Return(int64(1), nil).Once()
		clientMock.On("CreateCheckout", mock.Anything, mock.MatchedBy(func(req paymentprovider.CheckoutRequest) bool {
			return req.TransactionID != "" &&
				req.Amount == "3000" &&
				req.Currency == "XOF" &&
				req.Channels == "ALL" &&
				req.CustomerName == "Awa Diop" &&
				req.CustomerEmail == "payer@example.com"
		})).Return("https://checkout.example.com/pay/tx", nil).Once()

		url, err := service.InitiateCheckout(context.Background(), user)
		assert.NoError(t, err)
		assert.Equal(t, "https://checkout.example.com/pay/tx", url)
		repoMock.AssertExpectations(t)
		clientMock.AssertExpectations(t)
	})

	t.Run("provider failure is surfaced", func(t *testing.T) {
		repoMock := new(PaymentRepoMock)
		clientMock := new(CheckoutClientMock)
		service := payment.New(repoMock, clientMock, testConfig(), newNoopLogger())

		repoMock.On("CreatePendingPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(int64(1), nil).Once()
		clientMock.On("CreateCheckout", mock.Anything, mock.Anything).
			Return("", errors.New("provider unavailable")).Once()

		_, err := service.InitiateCheckout(context.Background(), user)
		assert.Error(t, err)
	})

	t.Run("storage failure stops before the provider", func(t *testing.T) {
		repoMock := new(PaymentRepoMock)
		clientMock := new(CheckoutClientMock)
		service := payment.New(repoMock, clientMock, testConfig(), newNoopLogger())

		repoMock.On("CreatePendingPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(int64(0), errors.New("db down")).Once()

		_, err := service.InitiateCheckout(context.Background(), user)
		assert.Error(t, err)
		clientMock.AssertNotCalled(t, "CreateCheckout", mock.Anything, mock.Anything)
	})
}

func TestService_ConfirmNotification(t *testing.T) {
	tests := []struct {
		name         string
		notification payment.Notification
		setupMocks   func(r *PaymentRepoMock)
		wantApplied  bool
		wantErr      error
	}{
		{
			name: "success status promotes for thirty days from now",
			notification: payment.Notification{
				TransactionID: "tx-1",
				Status:        "00",
				Email:         "payer@example.com",
				Amount:        "3000",
				Currency:      "XOF",
			},
			setupMocks: func(r *PaymentRepoMock) {
				r.On("ConfirmPayment", mock.Anything, "tx-1", "payer@example.com", "3000", "XOF",
					mock.MatchedBy(func(expiresAt time.Time) bool {
						expected := time.Now().UTC().Add(30 * 24 * time.Hour)
						return expiresAt.Sub(expected).Abs() < time.Minute
					})).Return(true, nil).Once()
			},
			wantApplied: true,
		},
		{
			name: "duplicate transaction is acknowledged without re-extension",
			notification: payment.Notification{
				TransactionID: "tx-1",
				Status:        "00",
				Email:         "payer@example.com",
			},
			setupMocks: func(r *PaymentRepoMock) {
				r.On("ConfirmPayment", mock.Anything, "tx-1", "payer@example.com", "", "", mock.Anything).
					Return(false, nil).Once()
			},
			wantApplied: false,
		},
		{
			name: "failed status never touches the account",
			notification: payment.Notification{
				TransactionID: "tx-2",
				Status:        "600",
				Email:         "payer@example.com",
			},
			setupMocks: func(r *PaymentRepoMock) {},
			wantErr:    payment.ErrRejected,
		},
		{
			name: "missing email is rejected",
			notification: payment.Notification{
				TransactionID: "tx-3",
				Status:        "00",
			},
			setupMocks: func(r *PaymentRepoMock) {},
			wantErr:    payment.ErrRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoMock := new(PaymentRepoMock)
			tt.setupMocks(repoMock)
			service := payment.New(repoMock, new(CheckoutClientMock), testConfig(), newNoopLogger())

			applied, err := service.ConfirmNotification(context.Background(), tt.notification)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantApplied, applied)
			}
			repoMock.AssertExpectations(t)
		})
	}
}

func TestService_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repoMock := new(PaymentRepoMock)
		service := payment.New(repoMock, new(CheckoutClientMock), testConfig(), newNoopLogger())

		repoMock.On("ListPayments", mock.Anything).Return([]*models.Payment{
			{ID: 1, TransactionID: "tx-1", Email: "payer@example.com", Status: "confirmed"},
			{ID: 2, TransactionID: "tx-2", Email: "other@example.com", Status: "pending"},
		}, nil)

		payments, err := service.List(context.Background())

		assert.NoError(t, err)
		assert.Len(t, payments, 2)
		assert.Equal(t, "tx-1", payments[0].TransactionID)
		repoMock.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repoMock := new(PaymentRepoMock)
		service := payment.New(repoMock, new(CheckoutClientMock), testConfig(), newNoopLogger())

		repoMock.On("ListPayments", mock.Anything).Return(nil, errors.New("database error"))

		_, err := service.List(context.Background())

		assert.Error(t, err)
		repoMock.AssertExpectations(t)
	})
}
