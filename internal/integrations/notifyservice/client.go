package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client клиент сервиса email-уведомлений.
// Все отправки best-effort: вызывающая сторона логирует ошибку и продолжает,
// доставка уведомлений никогда не влияет на исход основной операции.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendCancellationNotice отправляет клиенту письмо об отмене бронирования
func (c *Client) SendCancellationNotice(ctx context.Context, notice *CancellationNotice) error {
	if notice.RequestID == "" {
		notice.RequestID = uuid.NewString()
	}

	url := fmt.Sprintf("%s/internal/notifications/booking-cancelled", c.baseURL)

	body, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notice: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", notice.RequestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
