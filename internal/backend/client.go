// Package backend реализует HTTP-клиент к сервису, который разбирает и хранит чаты.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chat-viewer/internal/domain"
	"chat-viewer/internal/ports"
)

const (
	uploadPath  = "/procesar"
	chatsPath   = "/chats"
	threadPath  = "/mensajes/"
	uploadField = "file"
)

// Client — клиент для трех конечных точек бэкенда.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.Backend = (*Client)(nil)

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет HTTP-клиент (используется в тестах).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout задает общий таймаут запросов. Ноль означает отсутствие таймаута.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger задает логгер клиента.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient создает клиент для бэкенда по адресу baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Upload отправляет один файл в форме multipart с полем "file".
// Статус ответа не проверяется: ошибкой считается только сбой транспорта.
func (c *Client) Upload(ctx context.Context, file domain.UploadFile) error {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile(uploadField, file.Name)
	if err != nil {
		return fmt.Errorf("failed to create form file for %s: %w", file.Name, err)
	}
	if _, err = io.Copy(fw, file.Content); err != nil {
		return fmt.Errorf("failed to copy file content for %s: %w", file.Name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &b)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Debug("upload finished", slog.String("file", file.Name), slog.Int("status", resp.StatusCode))
	return nil
}

// ListChats запрашивает список чатов.
func (c *Client) ListChats(ctx context.Context) ([]domain.Chat, error) {
	var chats []domain.Chat
	if err := c.getList(ctx, c.baseURL+chatsPath, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// GetThread запрашивает сообщения чата id.
func (c *Client) GetThread(ctx context.Context, id domain.ChatID) ([]domain.Message, error) {
	var messages []domain.Message
	if err := c.getList(ctx, c.baseURL+threadPath+url.PathEscape(id.String()), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// getList выполняет GET и разбирает JSON-массив в dst.
// Корректный JSON, который не является массивом, оставляет dst пустым без ошибки.
// Элементы неожиданного вида разбираются типами domain без ошибки.
func (c *Client) getList(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	// Тело должно содержать ровно одно значение JSON
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("unexpected data after JSON value (status %d)", resp.StatusCode)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		c.logger.Debug("response is not a list", slog.String("url", endpoint), slog.Int("status", resp.StatusCode))
		return nil
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("failed to decode list: %w", err)
	}
	return nil
}
