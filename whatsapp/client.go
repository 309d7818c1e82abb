package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"invoice-extract/config"
)

const maxErrorBody = 512

// Client talks to the WhatsApp Cloud API.
type Client struct {
	baseURL       string
	apiVersion    string
	token         string
	phoneNumberID string
	http          *http.Client
	logger        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. The configured timeout is not applied to it.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.logger = l.Named("whatsapp") }
}

// NewClient creates a Client from cfg.
func NewClient(cfg config.WhatsAppConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiVersion:    cfg.APIVersion,
		token:         cfg.APIToken,
		phoneNumberID: cfg.PhoneNumberID,
		http:          &http.Client{Timeout: timeout},
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type textMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

type mediaInfo struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	ID       string `json:"id"`
}

// SendMessage sends a text message to the given number.
func (c *Client) SendMessage(ctx context.Context, to, text string) error {
	payload, err := json.Marshal(textMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textBody{Body: text},
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, c.apiVersion, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer c.close(resp)

	c.logger.Debug("message sent", zap.String("to", to), zap.Int("status", resp.StatusCode))
	return nil
}

// DownloadMedia resolves mediaID to its download URL and fetches the content.
func (c *Client) DownloadMedia(ctx context.Context, mediaID string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.apiVersion, mediaID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media info: %w", err)
	}
	var info mediaInfo
	err = json.NewDecoder(resp.Body).Decode(&info)
	c.close(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode media info: %w", err)
	}
	if info.URL == "" {
		return nil, fmt.Errorf("media %s has no download url", mediaID)
	}

	req, err = http.NewRequestWithContext(ctx, http.MethodGet, info.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err = c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download media: %w", err)
	}
	defer c.close(resp)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read media: %w", err)
	}
	c.logger.Debug("media downloaded", zap.String("media_id", mediaID), zap.Int("bytes", len(data)))
	return data, nil
}

// do sends req with the bearer token and turns non-2xx responses into errors.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.close(resp)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}

func (c *Client) close(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Warn("failed to close response body", zap.Error(err))
	}
}

// APIError is a non-2xx answer from the Cloud API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("whatsapp api returned status %d: %s", e.StatusCode, e.Body)
}
