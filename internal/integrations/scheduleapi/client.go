package scheduleapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/TMS-SearchService/internal/domain"
)

// Client клиент для работы со scheduling API (бэкенд поиска расписаний)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента scheduling API
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Health выполняет health-пробу бэкенда.
// Любой не-200 ответ или транспортная ошибка означает ErrBackendUnavailable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check returned status %d", ErrBackendUnavailable, resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("%w: failed to decode health response: %v", ErrBackendUnavailable, err)
	}

	c.log.Info("Health check passed: status=%s", health.Status)
	return nil
}

// SearchAvailabilities получает полный список слотов по выбранной страховке.
// Необязательные параметры фильтров передаются бэкенду, но корректность
// фильтрации гарантируется только на клиенте.
func (c *Client) SearchAvailabilities(ctx context.Context, insurance string, opts *SearchOptions) ([]domain.Availability, error) {
	params := url.Values{}
	params.Set("insurance", insurance)
	if opts != nil {
		if opts.Date != "" {
			params.Set("date", opts.Date)
		}
		if opts.DatePreset != "" {
			params.Set("datePreset", opts.DatePreset)
		}
		if opts.Times != "" {
			params.Set("times", opts.Times)
		}
		if opts.Soonest {
			params.Set("soonest", "true")
		}
	}

	requestURL := c.baseURL + "/api/availabilities?" + params.Encode()
	c.log.Info("Fetching availabilities: insurance=%s", insurance)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp)
	}

	var payload []Availability
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrMalformedResponse, err)
	}

	slots := make([]domain.Availability, 0, len(payload))
	for _, item := range payload {
		slot, err := item.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		slots = append(slots, slot)
	}

	c.log.Info("Fetched %d availabilities for insurance=%s", len(slots), insurance)
	return slots, nil
}

// GetInsurancePayers получает каталог страховых компаний
func (c *Client) GetInsurancePayers(ctx context.Context) ([]domain.InsurancePayer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/insurance-payers", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp)
	}

	var payload []InsurancePayer
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrMalformedResponse, err)
	}

	payers := make([]domain.InsurancePayer, len(payload))
	for i, p := range payload {
		payers[i] = domain.InsurancePayer{ID: p.ID, Name: p.Name}
	}

	return payers, nil
}

// decodeError разбирает не-2xx ответ бэкенда.
// JSON с полем detail — осмысленная ошибка запроса; всё остальное (например,
// HTML от неправильно настроенного прокси) — ErrMalformedResponse.
func (c *Client) decodeError(resp *http.Response) error {
	contentType := resp.Header.Get("Content-Type")

	if strings.Contains(contentType, "application/json") {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			c.log.Warn("Request failed: status=%d, detail=%s", resp.StatusCode, errResp.Detail)
			return fmt.Errorf("%w: %s", ErrRequestFailed, errResp.Detail)
		}
		return fmt.Errorf("%w: unexpected status code %d", ErrRequestFailed, resp.StatusCode)
	}

	c.log.Error("Received non-JSON response: status=%d, content-type=%s", resp.StatusCode, contentType)
	return fmt.Errorf("%w: status=%d", ErrMalformedResponse, resp.StatusCode)
}
