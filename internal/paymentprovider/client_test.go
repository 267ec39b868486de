package paymentprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckout(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantURL    string
		wantErr    bool
		wantErrIs  error
	}{
		{
			name:       "successful checkout",
			statusCode: http.StatusOK,
			body:       `{"code":"201","message":"CREATED","data":{"payment_url":"https://checkout.example.com/pay/abc"}}`,
			wantURL:    "https://checkout.example.com/pay/abc",
		},
		{
			name:       "provider rejects checkout",
			statusCode: http.StatusOK,
			body:       `{"code":"608","message":"MINIMUM_REQUIRED_FIELDS"}`,
			wantErr:    true,
			wantErrIs:  ErrCheckoutRejected,
		},
		{
			name:       "unexpected http status",
			statusCode: http.StatusBadGateway,
			body:       `upstream error`,
			wantErr:    true,
		},
		{
			name:       "malformed body",
			statusCode: http.StatusOK,
			body:       `not a json`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/payment", r.URL.Path)

				var got CheckoutRequest
				if err := json.NewDecoder(r.Body).Decode(&got); err == nil {
					// Клиент обязан подставить реквизиты магазина.
					assert.Equal(t, "test_key", got.APIKey)
					assert.Equal(t, "105899775", got.SiteID)
				}

				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("test_key", "105899775", srv.URL)
			url, err := client.CreateCheckout(context.Background(), CheckoutRequest{
				TransactionID: "tx-1",
				Amount:        "3000",
				Currency:      "XOF",
				CustomerEmail: "a@x.com",
			})

			if tt.wantErr {
				require.Error(t, err)
				if tt.wantErrIs != nil {
					assert.ErrorIs(t, err, tt.wantErrIs)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, url)
		})
	}
}

func TestCreateCheckout_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient("test_key", "105899775", srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CreateCheckout(ctx, CheckoutRequest{TransactionID: "tx-1"})
	require.Error(t, err)
}
