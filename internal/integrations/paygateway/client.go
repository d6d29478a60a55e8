package paygateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config конфигурация клиента платёжного шлюза
// Передаётся явно при создании клиента, без глобальных настроек
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MerchantID string
	Sandbox    bool
}

// Client клиент платёжного шлюза (Razorpay/PhonePe-совместимый API)
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платёжного шлюза
func NewClient(cfg Config, log Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// Charge выполняет списание средств
// Любая ошибка означает, что платёж не применён: частичных списаний не бывает,
// шлюз дедуплицирует повторы по reference
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	url := c.cfg.BaseURL + "/v1/charges"
	if c.cfg.Sandbox {
		url = c.cfg.BaseURL + "/v1/sandbox/charges"
	}

	payload := chargePayload{
		MerchantID: c.cfg.MerchantID,
		Reference:  req.Reference,
		Amount:     req.Amount.StringFixed(2),
		Currency:   req.Currency,
		Method:     req.Method,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("Charge: gateway request failed: reference=%s, error=%v", req.Reference, err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusPaymentRequired, http.StatusUnprocessableEntity:
		c.log.Warn("Charge: declined by gateway: reference=%s, status=%d", req.Reference, resp.StatusCode)
		return nil, ErrChargeDeclined
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrGatewayUnavailable, resp.StatusCode, string(respBody))
	}

	var gwResp chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&gwResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !gwResp.Success {
		c.log.Warn("Charge: declined by gateway: reference=%s, code=%s, message=%s",
			req.Reference, gwResp.ErrorCode, gwResp.ErrorMessage)
		return nil, ErrChargeDeclined
	}

	if gwResp.TransactionID == "" {
		return nil, fmt.Errorf("%w: success response without transaction id", ErrInvalidResponse)
	}

	c.log.Info("Charge: success: reference=%s, transaction_id=%s, amount=%s",
		req.Reference, gwResp.TransactionID, payload.Amount)

	return &ChargeResult{
		Success:       true,
		TransactionID: gwResp.TransactionID,
	}, nil
}
