package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/utils"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type ChatCompletionChoice struct {
	Message ChatMessage `json:"message"`
}

type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ChatCompletionResponse struct {
	Choices []ChatCompletionChoice `json:"choices"`
	Usage   ChatUsage              `json:"usage"`
}

// ChatClient talks to an OpenAI-compatible chat-completion endpoint.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
	Model() string
}

type chatHTTPError struct {
	StatusCode int
	Body       string
}

func (e *chatHTTPError) Error() string {
	return fmt.Sprintf("chat api returned status %d: %s", e.StatusCode, e.Body)
}

func isRetryableHTTP(status int) bool {
	return status == http.StatusRequestTimeout ||
		status == http.StatusTooManyRequests ||
		status >= 500
}

type chatClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	log        *logger.Logger
}

func NewChatClient(baseLog *logger.Logger) ChatClient {
	log := baseLog.With("service", "ChatClient")
	timeout := utils.GetEnvAsInt("CHAT_API_TIMEOUT_SECONDS", 60, log)
	return &chatClient{
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		baseURL:    utils.GetEnv("CHAT_API_BASE_URL", "https://api.openai.com", log),
		apiKey:     utils.GetEnv("CHAT_API_KEY", "", log),
		model:      utils.GetEnv("CHAT_MODEL", "gpt-4o-mini", log),
		maxRetries: utils.GetEnvAsInt("CHAT_API_MAX_RETRIES", 3, log),
		log:        log,
	}
}

func (c *chatClient) Model() string { return c.model }

func (c *chatClient) CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: chat api key not configured", apperr.ErrExternalService)
	}
	if req.Model == "" {
		req.Model = c.model
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	body, err := c.do(ctx, payload)
	if err != nil {
		return nil, err
	}
	var out ChatCompletionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode chat response: %v", apperr.ErrExternalService, err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("%w: chat response has no choices", apperr.ErrExternalService)
	}
	return &out, nil
}

// do runs the request with bounded retries: exponential backoff starting at
// one second, capped at ten, jittered, honoring Retry-After on 429s.
func (c *chatClient) do(ctx context.Context, payload []byte) ([]byte, error) {
	backoff := time.Second
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Warn("Retrying chat completion", "attempt", attempt, "error", lastErr)
			if err := sleepCtx(ctx, jitter(backoff)); err != nil {
				return nil, err
			}
			backoff *= 2
			if backoff > 10*time.Second {
				backoff = 10 * time.Second
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			lastErr = err
			continue
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}
		if resp.StatusCode == http.StatusOK {
			return body, nil
		}
		lastErr = &chatHTTPError{StatusCode: resp.StatusCode, Body: string(body)}
		if !isRetryableHTTP(resp.StatusCode) {
			return nil, fmt.Errorf("%w: %v", apperr.ErrExternalService, lastErr)
		}
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
				backoff = time.Duration(secs) * time.Second
			}
		}
	}
	return nil, fmt.Errorf("%w: %v", apperr.ErrExternalService, lastErr)
}

// jitter spreads a delay by +-20% so retries from concurrent callers don't
// line up.
func jitter(d time.Duration) time.Duration {
	delta := time.Duration(rand.Int63n(int64(d) / 5))
	if rand.Intn(2) == 0 {
		return d - delta
	}
	return d + delta
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
