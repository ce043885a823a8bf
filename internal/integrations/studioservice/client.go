package studioservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы со StudioService
// StudioService является источником рабочих часов студий и реестра тренажеров
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента StudioService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetStudio получает студию по ID (рабочие часы, менеджеры)
func (c *Client) GetStudio(ctx context.Context, studioID int64) (*Studio, error) {
	url := fmt.Sprintf("%s/internal/studios/%d", c.baseURL, studioID)

	var studio Studio
	if err := c.get(ctx, url, &studio); err != nil {
		return nil, err
	}

	return &studio, nil
}

// GetMachine получает тренажер студии по ID
func (c *Client) GetMachine(ctx context.Context, studioID, machineID int64) (*Machine, error) {
	url := fmt.Sprintf("%s/internal/studios/%d/machines/%d", c.baseURL, studioID, machineID)

	var machine Machine
	if err := c.get(ctx, url, &machine); err != nil {
		return nil, err
	}

	return &machine, nil
}

// GetMachines получает список всех тренажеров студии
func (c *Client) GetMachines(ctx context.Context, studioID int64) ([]Machine, error) {
	url := fmt.Sprintf("%s/internal/studios/%d/machines", c.baseURL, studioID)

	machines := make([]Machine, 0)
	if err := c.get(ctx, url, &machines); err != nil {
		return nil, err
	}

	return machines, nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return c.notFoundError(url)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// notFoundError различает 404 по студии и по тренажеру через путь запроса
func (c *Client) notFoundError(url string) error {
	if strings.Contains(url, "/machines") {
		return ErrMachineNotFound
	}
	return ErrStudioNotFound
}
