// Package api is the typed client for the quiz generation backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/wikiquiz/internal/quiz"
)

// ErrBackendUnavailable wraps every transport-level failure: refused
// connection, DNS, timeout or a cancelled request.
var ErrBackendUnavailable = errors.New("quiz backend unavailable")

// APIError is a non-2xx response. Detail is the server's `detail` field and
// may be empty.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Detail) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Detail
}

// DecodeError is a 2xx response whose body could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client talks to the REST contract of the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type generateRequest struct {
	URL          string `json:"url"`
	ForceRefresh bool   `json:"force_refresh"`
}

type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// New returns a client for baseURL. A nil httpClient falls back to a client
// with a 60s timeout; a nil logger discards logs.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, logger: logger}
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// GenerateQuiz asks the backend for the quiz of articleURL. With
// forceRefresh the backend bypasses its cache.
func (c *Client) GenerateQuiz(ctx context.Context, articleURL string, forceRefresh bool) (*quiz.Artifact, error) {
	var artifact quiz.Artifact
	body := generateRequest{URL: articleURL, ForceRefresh: forceRefresh}
	if err := c.doJSON(ctx, http.MethodPost, "/generate-quiz", body, &artifact); err != nil {
		return nil, err
	}
	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// History lists previously generated quizzes.
func (c *Client) History(ctx context.Context) ([]quiz.HistoryEntry, error) {
	var entries []quiz.HistoryEntry
	if err := c.doJSON(ctx, http.MethodGet, "/history", nil, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []quiz.HistoryEntry{}
	}
	return entries, nil
}

// DeleteQuiz removes the quiz with the given id.
func (c *Client) DeleteQuiz(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, "/quizzes/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer response.Body.Close()

	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", response.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return &APIError{StatusCode: response.StatusCode, Detail: readDetail(response.Body)}
	}

	if responseBody == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(responseBody); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}

// readDetail extracts `detail` from an error body. Non-string details, such
// as validation error lists, are returned as raw JSON.
func readDetail(r io.Reader) string {
	var payload errorResponse
	if err := json.NewDecoder(r).Decode(&payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}
	if string(payload.Detail) == "null" {
		return ""
	}
	return string(payload.Detail)
}
