// Package apiclient talks to the remote workouts API that stores workouts
// and the exercise catalogue.
package apiclient

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

	"github.com/claude/treino/internal/models"
)

const (
	findExercisePath  = "/workouts/find-exercise-info-by-name"
	createWorkoutPath = "/workouts/create"
)

// DefaultTimeout bounds every outbound request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// StatusError is returned when the API answers with a non-OK status.
type StatusError struct {
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("apiclient: %s returned %d: %s", e.Path, e.StatusCode, e.Body)
}

// RejectionError is returned when the API refuses a workout creation.
// Messages holds the decoded "message" field, which may be empty when the
// body could not be decoded.
type RejectionError struct {
	StatusCode int
	Messages   []string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("apiclient: create rejected (%d): %s", e.StatusCode, strings.Join(e.Messages, ", "))
}

// Client calls the workouts API on behalf of a user holding a bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for baseURL. A zero timeout selects DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, params url.Values, body any) (*http.Response, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("apiclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apiclient: %s: %w", path, err)
	}
	return resp, nil
}

// FindExercises looks up exercises whose name matches name, scoped to the
// account owning token. A non-OK status yields a *StatusError; any other
// error is a transport or decoding failure.
func (c *Client) FindExercises(ctx context.Context, token, name string) ([]models.ExerciseCandidate, error) {
	params := url.Values{}
	params.Set("name", name)

	resp, err := c.do(ctx, http.MethodGet, findExercisePath, token, params, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Path: findExercisePath, StatusCode: resp.StatusCode, Body: data}
	}

	var candidates []models.ExerciseCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("apiclient: decode exercises: %w", err)
	}
	return candidates, nil
}

// CreateWorkout posts a new workout. A non-OK status yields a
// *RejectionError carrying the server's messages.
func (c *Client) CreateWorkout(ctx context.Context, token string, w models.CreateWorkoutRequest) error {
	resp, err := c.do(ctx, http.MethodPost, createWorkoutPath, token, nil, w)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	rej := &RejectionError{StatusCode: resp.StatusCode}
	var body models.APIErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		rej.Messages = body.Message
	}
	return rej
}
