// Package paymentprovider содержит HTTP-клиент платёжного провайдера CinetPay.
// Клиент отвечает только за инициализацию платежа: подтверждение приходит
// асинхронным server-to-server уведомлением на notify_url.
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrCheckoutRejected возвращается, когда провайдер ответил, но отказал
// в инициализации платежа. Такой отказ показывается пользователю как
// ошибка запроса, а не как сбой сервиса.
var ErrCheckoutRejected = errors.New("checkout rejected by provider")

// Client — клиент CinetPay checkout API.
type Client struct {
	apiKey     string
	siteID     string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент CinetPay.
func NewClient(apiKey, siteID, apiURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		siteID:     siteID,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateCheckout инициализирует платёж и возвращает URL платёжной страницы.
func (c *Client) CreateCheckout(ctx context.Context, reqParams CheckoutRequest) (string, error) {
	const op = "paymentprovider.CreateCheckout"

	reqParams.APIKey = c.apiKey
	reqParams.SiteID = c.siteID

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqParams); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/payment", &buf)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var checkoutResp CheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&checkoutResp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if checkoutResp.Code != checkoutCreated {
		return "", fmt.Errorf("%s: code %s: %w", op, checkoutResp.Code, ErrCheckoutRejected)
	}
	return checkoutResp.Data.PaymentURL, nil
}
