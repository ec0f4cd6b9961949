package retailcrm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/crmgate/retailcrm-gateway/internal/domain"
	"go.uber.org/zap"
)

// apiVersionPath фиксированный сегмент версии API RetailCRM
const apiVersionPath = "/api/v5"

// defaultTimeout таймаут одного запроса к RetailCRM
const defaultTimeout = 30 * time.Second

// Client представляет клиент для работы с API RetailCRM.
// Создается один раз при старте и передается по ссылке в обработчики.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

// Config конфигурация для клиента RetailCRM
type Config struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// NewClient создает новый клиент RetailCRM
func NewClient(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.APIURL, "/") + apiVersionPath,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Request выполняет один запрос к RetailCRM и разбирает конверт ответа.
// Возвращает декодированное тело целиком только при HTTP 2xx и success:true.
// Ровно одна попытка, без повторов.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body any) (map[string]any, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, NewTransportError(fmt.Sprintf("failed to encode request body: %v", err), err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, NewTransportError(fmt.Sprintf("failed to create request: %v", err), err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("sending request to RetailCRM",
		zap.String("method", method),
		zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("RetailCRM request failed", zap.Error(err))
		return nil, NewTransportError(fmt.Sprintf("request error: %v", err), err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewTransportError(fmt.Sprintf("failed to read response body: %v", err), err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail := extractErrorDetail(rawBody)
		c.log.Warn("RetailCRM returned HTTP error",
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Detail: detail}
	}

	var result map[string]any
	if err := json.Unmarshal(rawBody, &result); err != nil {
		return nil, &BusinessError{Message: fmt.Sprintf("invalid JSON in response body: %v", err)}
	}

	if success, _ := result["success"].(bool); !success {
		msg, _ := result["errorMsg"].(string)
		if msg == "" {
			msg = "Unknown error"
		}
		if errs, ok := result["errors"]; ok {
			msg = fmt.Sprintf("%s Errors: %v", msg, errs)
		}
		c.log.Warn("RetailCRM returned business error", zap.String("error", msg))
		return nil, &BusinessError{Message: msg}
	}

	return result, nil
}

// extractErrorDetail извлекает человекочитаемую детализацию из тела
// ответа с ошибкой. Если тело не разбирается как JSON, возвращается как есть.
func extractErrorDetail(rawBody []byte) string {
	var parsed map[string]any
	if err := json.Unmarshal(rawBody, &parsed); err == nil {
		if msg, ok := parsed["errorMsg"].(string); ok && msg != "" {
			return msg
		}
		if errs, ok := parsed["errors"]; ok {
			return fmt.Sprintf("%v", errs)
		}
	}
	return string(rawBody)
}

// GetCustomers возвращает список клиентов с учетом фильтров.
// Отсутствующие фильтры не попадают в параметры запроса.
func (c *Client) GetCustomers(ctx context.Context, filter domain.CustomerFilter) (map[string]any, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(filter.Limit))
	query.Set("page", strconv.Itoa(filter.Page))

	if filter.Name != "" {
		query.Set("name", filter.Name)
	}
	if filter.Email != "" {
		query.Set("email", filter.Email)
	}
	if filter.DateFrom != "" {
		query.Set("createdAtFrom", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query.Set("createdAtTo", filter.DateTo)
	}

	return c.Request(ctx, http.MethodGet, "customers", query, nil)
}

// CreateCustomer создает нового клиента в RetailCRM
func (c *Client) CreateCustomer(ctx context.Context, customer map[string]any) (map[string]any, error) {
	return c.Request(ctx, http.MethodPost, "customers/create", nil, map[string]any{
		"customer": customer,
	})
}

// GetOrders возвращает заказы клиента
func (c *Client) GetOrders(ctx context.Context, customerID, limit, page int) (map[string]any, error) {
	query := url.Values{}
	query.Set("filter[customerId]", strconv.Itoa(customerID))
	query.Set("limit", strconv.Itoa(limit))
	query.Set("page", strconv.Itoa(page))

	return c.Request(ctx, http.MethodGet, "orders", query, nil)
}

// GetOrder возвращает заказ по идентификатору
func (c *Client) GetOrder(ctx context.Context, orderID int) (map[string]any, error) {
	return c.Request(ctx, http.MethodGet, fmt.Sprintf("orders/%d", orderID), nil, nil)
}

// CreateOrder создает новый заказ в RetailCRM
func (c *Client) CreateOrder(ctx context.Context, order map[string]any) (map[string]any, error) {
	return c.Request(ctx, http.MethodPost, "orders/create", nil, map[string]any{
		"order": order,
	})
}

// EditOrder редактирует существующий заказ в RetailCRM
func (c *Client) EditOrder(ctx context.Context, order map[string]any) (map[string]any, error) {
	return c.Request(ctx, http.MethodPost, "orders/edit", nil, map[string]any{
		"order": order,
	})
}
