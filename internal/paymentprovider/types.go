package paymentprovider

// CheckoutRequest — запрос на создание платёжной страницы CinetPay.
// Поля apikey и site_id подставляет клиент, остальное — вызывающая сторона.
type CheckoutRequest struct {
	APIKey        string `json:"apikey"`
	SiteID        string `json:"site_id"`
	TransactionID string `json:"transaction_id" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
	Currency      string `json:"currency" validate:"required"`
	Description   string `json:"description"`
	ReturnURL     string `json:"return_url"`
	NotifyURL     string `json:"notify_url"`
	Channels      string `json:"channels"`

	CustomerName        string `json:"customer_name"`
	CustomerEmail       string `json:"customer_email"`
	CustomerPhoneNumber string `json:"customer_phone_number"`
	CustomerCity        string `json:"customer_city"`
	CustomerCountry     string `json:"customer_country"`
}

// CheckoutResponse — ответ CinetPay на создание платежа.
// Код "201" означает успешную инициализацию.
type CheckoutResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		PaymentURL string `json:"payment_url"`
	} `json:"data"`
}

// checkoutCreated — код успешной инициализации платежа у провайдера.
const checkoutCreated = "201"
