package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/utils"
)

type TalkScript struct {
	Type     string `json:"type"`
	Input    string `json:"input"`
	Provider struct {
		Type    string `json:"type,omitempty"`
		VoiceID string `json:"voice_id,omitempty"`
	} `json:"provider,omitempty"`
}

type CreateTalkRequest struct {
	Script    TalkScript `json:"script"`
	SourceURL string     `json:"source_url"`
}

type Talk struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	ResultURL string `json:"result_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

type TalkList struct {
	Talks []Talk `json:"talks"`
}

type Voice struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Gender   string   `json:"gender"`
	Language string   `json:"language"`
	Styles   []string `json:"styles,omitempty"`
}

// TalkClient drives the talking-avatar API. WaitForTalk polls with a hard
// attempt cap so a stuck render can't pin a request forever.
type TalkClient interface {
	CreateTalk(ctx context.Context, req CreateTalkRequest) (*Talk, error)
	GetTalk(ctx context.Context, id string) (*Talk, error)
	ListTalks(ctx context.Context) (*TalkList, error)
	DeleteTalk(ctx context.Context, id string) error
	ListVoices(ctx context.Context) ([]Voice, error)
	WaitForTalk(ctx context.Context, id string) (*Talk, error)
}

type talkClient struct {
	httpClient   *http.Client
	baseURL      string
	authHeader   string
	maxPolls     int
	pollInterval time.Duration
	log          *logger.Logger
}

func NewTalkClient(baseLog *logger.Logger) TalkClient {
	log := baseLog.With("service", "TalkClient")
	timeout := utils.GetEnvAsInt("TALKS_API_TIMEOUT_SECONDS", 30, log)
	apiKey := utils.GetEnv("TALKS_API_KEY", "", log)
	return &talkClient{
		httpClient:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		baseURL:      utils.GetEnv("TALKS_API_BASE_URL", "https://api.d-id.com", log),
		authHeader:   "Basic " + base64.StdEncoding.EncodeToString([]byte(apiKey)),
		maxPolls:     utils.GetEnvAsInt("TALKS_MAX_POLLS", 30, log),
		pollInterval: time.Duration(utils.GetEnvAsInt("TALKS_POLL_INTERVAL_MS", 1000, log)) * time.Millisecond,
		log:          log,
	}
}

func (c *talkClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal talk request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.authHeader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrExternalService, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read talk response: %v", apperr.ErrExternalService, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: talk api returned status %d: %s", apperr.ErrExternalService, resp.StatusCode, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: decode talk response: %v", apperr.ErrExternalService, err)
		}
	}
	return nil
}

func (c *talkClient) CreateTalk(ctx context.Context, req CreateTalkRequest) (*Talk, error) {
	if req.Script.Input == "" {
		return nil, fmt.Errorf("%w: script input is required", apperr.ErrValidation)
	}
	if req.SourceURL == "" {
		return nil, fmt.Errorf("%w: source_url is required", apperr.ErrValidation)
	}
	if req.Script.Type == "" {
		req.Script.Type = "text"
	}
	var talk Talk
	if err := c.do(ctx, http.MethodPost, "/talks", req, &talk); err != nil {
		return nil, err
	}
	return &talk, nil
}

func (c *talkClient) GetTalk(ctx context.Context, id string) (*Talk, error) {
	var talk Talk
	if err := c.do(ctx, http.MethodGet, "/talks/"+id, nil, &talk); err != nil {
		return nil, err
	}
	return &talk, nil
}

func (c *talkClient) ListTalks(ctx context.Context) (*TalkList, error) {
	var list TalkList
	if err := c.do(ctx, http.MethodGet, "/talks", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *talkClient) DeleteTalk(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/talks/"+id, nil, nil)
}

func (c *talkClient) ListVoices(ctx context.Context) ([]Voice, error) {
	var voices []Voice
	if err := c.do(ctx, http.MethodGet, "/tts/voices", nil, &voices); err != nil {
		return nil, err
	}
	return voices, nil
}

// WaitForTalk polls until the render is done or the attempt budget runs
// out. Exhaustion is a TimedOut error, a failed render is an external
// service error.
func (c *talkClient) WaitForTalk(ctx context.Context, id string) (*Talk, error) {
	interval := c.pollInterval
	for attempt := 0; attempt < c.maxPolls; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, interval); err != nil {
				return nil, err
			}
			interval *= 2
			if interval > 10*time.Second {
				interval = 10 * time.Second
			}
		}
		talk, err := c.GetTalk(ctx, id)
		if err != nil {
			return nil, err
		}
		switch talk.Status {
		case "done":
			return talk, nil
		case "error", "rejected":
			return nil, fmt.Errorf("%w: talk %s failed: %s", apperr.ErrExternalService, id, talk.Error)
		}
	}
	return nil, fmt.Errorf("%w: talk %s not ready after %d polls", apperr.ErrTimedOut, id, c.maxPolls)
}
