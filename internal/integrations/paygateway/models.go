package paygateway

import "github.com/shopspring/decimal"

// ChargeRequest запрос на списание средств
type ChargeRequest struct {
	Reference string          `json:"reference"` // токен сессии, используется шлюзом как idempotency key
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Method    string          `json:"method"` // "upi", "card" и т.п. на стороне шлюза
}

// ChargeResult результат списания
type ChargeResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
}

// chargePayload тело запроса к шлюзу
type chargePayload struct {
	MerchantID string `json:"merchant_id"`
	Reference  string `json:"reference"`
	Amount     string `json:"amount"` // сумма строкой, чтобы не терять точность
	Currency   string `json:"currency"`
	Method     string `json:"method"`
}

// chargeResponse ответ шлюза
type chargeResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	ErrorCode     string `json:"error_code,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
}
