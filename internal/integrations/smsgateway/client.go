package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config конфигурация SMS-шлюза (Fast2SMS-совместимый API)
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	SenderID string
	Enabled  bool
}

// Client клиент SMS-уведомлений
// Отправка fire-and-forget: ядро никогда не блокируется на доставке
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента SMS-шлюза
func NewClient(cfg Config, log Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// Notify отправляет уведомление о событии сессии
// Ошибка доставки не влияет на исход операции: вызывающая сторона только логирует её
func (c *Client) Notify(ctx context.Context, n Notification) error {
	if !c.cfg.Enabled {
		c.log.Info("Notify: sms disabled, skipping event=%s for session=%s", n.Event, n.SessionToken)
		return nil
	}

	payload := struct {
		SenderID string `json:"sender_id"`
		Notification
	}{
		SenderID:     c.cfg.SenderID,
		Notification: n,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v2/notify", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("%w: unexpected status code %d", ErrSendFailed, resp.StatusCode)
	}

	c.log.Info("Notify: sent event=%s for session=%s", n.Event, n.SessionToken)
	return nil
}
