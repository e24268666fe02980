// OpenAI chat completions implementation of [Generator]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/showtunes/internal/shared"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"

	// maxGenerationRetries bounds automatic retries on transient provider
	// failures. Auth and validation failures are never retried.
	maxGenerationRetries = 2

	retryBackoff = 500 * time.Millisecond
)

// chatRequest is the wire format of a chat completions call.
type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type openAIError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAIClient implements [Generator] against the OpenAI chat completions
// endpoint. The API key is server-held and never leaves this process.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(apiKey string, httpClient *http.Client, logger *log.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing OpenAI API key", shared.ErrMissingCredentials)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &OpenAIClient{
		apiKey:     apiKey,
		baseURL:    openAIBaseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

func (c *OpenAIClient) Name() string {
	return "OpenAI"
}

// Complete issues the generation call with a capped output length and fixed
// sampling temperature, retrying transient failures up to
// maxGenerationRetries times.
func (c *OpenAIClient) Complete(ctx context.Context, req GenerationRequest) (string, error) {
	if strings.TrimSpace(req.Title) == "" {
		return "", fmt.Errorf("%w: show title is empty", shared.ErrInvalidInput)
	}
	if req.User == "" {
		return "", fmt.Errorf("%w: empty prompt", shared.ErrInvalidInput)
	}

	payload, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxGenerationRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying generation call", "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(retryBackoff):
			}
		}

		text, retryable, err := c.complete(ctx, payload)
		if err == nil {
			return text, nil
		}

		lastErr = err
		if !retryable {
			return "", err
		}
	}

	return "", lastErr
}

// complete performs a single chat completions call. The second return value
// reports whether the failure is transient and safe to retry.
func (c *OpenAIClient) complete(ctx context.Context, payload []byte) (string, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", true, fmt.Errorf("%w: %v", shared.ErrConnectivity, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("%w: reading response: %v", shared.ErrConnectivity, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests

		var errPayload openAIError
		if json.Unmarshal(body, &errPayload) == nil && errPayload.Error.Message != "" {
			return "", retryable, fmt.Errorf("%w: %s", shared.ErrProvider, errPayload.Error.Message)
		}
		return "", retryable, fmt.Errorf("%w: status %d", shared.ErrProvider, resp.StatusCode)
	}

	var data chatResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", false, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(data.Choices) == 0 {
		return "", false, fmt.Errorf("%w: response contained no choices", shared.ErrProvider)
	}

	return strings.TrimSpace(data.Choices[0].Message.Content), false, nil
}
