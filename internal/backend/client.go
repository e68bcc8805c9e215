package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
	"github.com/vladislavdragonenkov/sagafitmi/internal/metrics"
)

func init() {
	// Бэкенд кодирует цены числами JSON, а не строками.
	decimal.MarshalJSONWithoutQuotes = true
}

type ctxKey int

const tokenKey ctxKey = iota

// WithToken кладёт bearer-токен в контекст запроса. Клиент добавит заголовок
// Authorization ко всем вызовам с этим контекстом.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFrom возвращает токен из контекста, если он там есть.
func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// Client — типизированный клиент REST API бэкенда. Нормализует транспортные
// сбои в domain.ErrBackendUnavailable, а не-2xx ответы — в *APIError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Entry
	metrics    *metrics.StorefrontMetrics
	breaker    *CircuitBreaker
	retry      RetryConfig
}

// Option настраивает клиента при создании.
type Option func(*Client)

// WithHTTPClient подменяет http.Client (в тестах — httptest).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics включает запись метрик исходящих запросов.
func WithMetrics(m *metrics.StorefrontMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithBreaker защищает все вызовы circuit breaker'ом.
func WithBreaker(b *CircuitBreaker) Option {
	return func(c *Client) { c.breaker = b }
}

// WithRetry настраивает повторы идемпотентных GET-запросов.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// NewClient создаёт клиента для указанного базового URL бэкенда.
func NewClient(baseURL string, logger *log.Entry, opts ...Option) *Client {
	if logger == nil {
		logger = log.WithField("component", "backend-client")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Трассировка исходящих запросов через otelhttp.
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
		retry:  NoRetry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call выполняет один HTTP-запрос и декодирует ответ в out (если out != nil).
// endpoint — стабильное имя операции для логов и метрик.
func (c *Client) call(ctx context.Context, endpoint, method, path string, query url.Values, body, out any) error {
	fn := func() error { return c.callOnce(ctx, endpoint, method, path, query, body, out) }

	// Повторяем только идемпотентные GET; запись повторяет пользователь.
	if method == http.MethodGet {
		fn = c.withRetry(ctx, endpoint, fn)
	}
	if c.breaker != nil {
		return c.breaker.Execute(endpoint, fn)
	}
	return fn()
}

func (c *Client) callOnce(ctx context.Context, endpoint, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	err := c.doJSON(ctx, method, path, query, body, out)
	c.observe(endpoint, start, err)
	return err
}

func (c *Client) observe(endpoint string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		c.logger.WithError(err).WithField("endpoint", endpoint).Debug("backend request failed")
	}
	if c.metrics != nil {
		c.metrics.RecordBackendRequest(endpoint, outcome, time.Since(start))
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Транспортный сбой: соединения с бэкендом нет.
		return transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		return unmarshalJSON(data, out)
	}
	return nil
}

func transportError(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
}

func unmarshalJSON(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if tok, ok := TokenFrom(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

// normalizeError приводит не-2xx ответ к APIError "<status> <message>".
// Сообщение берём из поля message тела ответа, иначе — текст статуса.
func normalizeError(status int, body []byte) error {
	message := http.StatusText(status)
	if message == "" {
		message = "Request failed"
	}

	var envelope struct {
		Message string `json:"message"`
	}
	if len(body) > 0 && json.Unmarshal(body, &envelope) == nil && envelope.Message != "" {
		message = envelope.Message
	}
	return &APIError{Status: status, Message: message}
}
