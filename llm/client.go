package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrNotConfigured       = errors.New("AI gateway API key is not configured")
	ErrRateLimited         = errors.New("limite de requisições excedido")
	ErrInsufficientCredits = errors.New("créditos de IA insuficientes")
	ErrEmptyCompletion     = errors.New("AI gateway returned no completion")
)

// GatewayError carries the upstream status and body of a failed gateway call
type GatewayError struct {
	Status int
	Body   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("AI gateway error: %d - %s", e.Status, e.Body)
}

const defaultModel = "google/gemini-3-flash-preview"

// Client issues chat-completion requests against an OpenAI-compatible
// gateway. One synchronous attempt per call, no retry or backoff; the
// caller decides whether a retry makes sense.
type Client struct {
	api   *openai.Client
	model string
}

// Config holds gateway connection settings
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// NewClient creates a new gateway client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Client{
		api:   openai.NewClientWithConfig(apiCfg),
		model: model,
	}, nil
}

// NewClientFromEnv creates a gateway client from environment variables
func NewClientFromEnv() (*Client, error) {
	return NewClient(Config{
		BaseURL: os.Getenv("AI_GATEWAY_URL"),
		APIKey:  os.Getenv("AI_GATEWAY_API_KEY"),
		Model:   os.Getenv("AI_MODEL"),
	})
}

// Options tunes a single completion call
type Options struct {
	Temperature  float32
	JSONResponse bool
}

// Complete sends one system+user message pair and returns the raw
// assistant text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: opts.Temperature,
	}
	if opts.JSONResponse {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", mapAPIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}

// mapAPIError translates gateway failures into the error taxonomy the
// handlers surface: 429 and 402 keep their status, anything else carries
// the upstream status and body.
func mapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return ErrRateLimited
		case http.StatusPaymentRequired:
			return ErrInsufficientCredits
		}
		return &GatewayError{Status: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return ErrRateLimited
		case http.StatusPaymentRequired:
			return ErrInsufficientCredits
		}
		return &GatewayError{Status: reqErr.HTTPStatusCode, Body: string(reqErr.Body)}
	}

	return err
}

// StatusOf returns the HTTP status a gateway error should surface with,
// or 0 when err is not a gateway error.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrInsufficientCredits):
		return http.StatusPaymentRequired
	}
	var gw *GatewayError
	if errors.As(err, &gw) {
		return gw.Status
	}
	return 0
}
