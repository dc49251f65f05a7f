package imagejob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/carousel-api/internal/domain"
	"golang.org/x/time/rate"
)

// ServiceName identifies the image service in domain errors.
const ServiceName = "kie.ai"

// Defaults for the poll loop: 30 attempts every 2s, about a minute.
const (
	DefaultMaxAttempts  = 30
	DefaultPollInterval = 2 * time.Second
	DefaultModel        = "google/nano-banana"
)

const (
	opSubmit  = "submit image job"
	opPoll    = "poll image job"
	opResolve = "resolve image job"

	// maxErrorBody caps how much of an error response body is kept.
	maxErrorBody = 1 << 10
)

// Status is the job state reported by the service.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// JobResult is the outcome of one poll.
type JobResult struct {
	Status   Status
	ImageURL string
	// Reason is the service's failure text for StatusFailed.
	Reason string
}

// ResolveOptions bounds the poll loop. A zero MaxAttempts or a negative
// PollInterval takes the client default; a zero PollInterval polls back to back.
type ResolveOptions struct {
	MaxAttempts  int
	PollInterval time.Duration
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
	Logger     *slog.Logger

	// SubmitsPerMinute paces job submissions. Zero disables pacing.
	SubmitsPerMinute int

	// Defaults applied by Resolve, see ResolveOptions.
	MaxAttempts  int
	PollInterval time.Duration
}

// Client talks to the job API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
	defaults   ResolveOptions
}

// New creates a Client.
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("image job API key cannot be empty")
	}
	if _, err := url.ParseRequestURI(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid image job base URL %q: %w", opts.BaseURL, err)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.PollInterval < 0 {
		opts.PollInterval = DefaultPollInterval
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.SubmitsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.SubmitsPerMinute)), 1)
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		model:      opts.Model,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger.With("component", "imagejob"),
		limiter:    limiter,
		defaults:   ResolveOptions{MaxAttempts: opts.MaxAttempts, PollInterval: opts.PollInterval},
	}, nil
}

type createTaskInput struct {
	Prompt       string `json:"prompt"`
	ImageSize    string `json:"image_size"`
	OutputFormat string `json:"output_format"`
}

type createTaskRequest struct {
	Model string          `json:"model"`
	Input createTaskInput `json:"input"`
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) ok() bool { return e.Code == 0 || e.Code == http.StatusOK }

type taskData struct {
	TaskID string `json:"taskId"`
	Status string `json:"status"`
	Output *struct {
		ImageURL string   `json:"image_url"`
		Images   []string `json:"images"`
	} `json:"output"`
	Error string `json:"error"`
}

// Submit creates a job for prompt and returns its id.
func (c *Client) Submit(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", domain.NewValidationError("prompt", "is required", nil)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", domain.FromContext(opSubmit, ServiceName, err)
	}

	body, err := json.Marshal(createTaskRequest{
		Model: c.model,
		Input: createTaskInput{Prompt: prompt, ImageSize: "1:1", OutputFormat: "png"},
	})
	if err != nil {
		return "", fmt.Errorf("%s: failed to encode request: %w", opSubmit, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/createTask", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: %w", opSubmit, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var data taskData
	if err := c.do(req, opSubmit, &data); err != nil {
		return "", err
	}
	if data.TaskID == "" {
		return "", domain.NewUpstreamError(opSubmit, ServiceName, fmt.Errorf("%w: response has no taskId", ErrRejected))
	}

	c.logger.InfoContext(ctx, "image job submitted", "task_id", data.TaskID, "prompt_length", len(prompt))
	return data.TaskID, nil
}

// Poll fetches the current state of a job. A failed job is reported as a
// JobResult, not an error; errors are reserved for transport problems.
func (c *Client) Poll(ctx context.Context, jobID string) (JobResult, error) {
	endpoint := c.baseURL + "/getTaskDetails?taskId=" + url.QueryEscape(jobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return JobResult{}, fmt.Errorf("%s: %w", opPoll, err)
	}

	var data taskData
	if err := c.do(req, opPoll, &data); err != nil {
		return JobResult{}, err
	}

	switch Status(data.Status) {
	case StatusFailed:
		reason := data.Error
		if reason == "" {
			reason = "unknown error"
		}
		return JobResult{Status: StatusFailed, Reason: reason}, nil
	case StatusCompleted:
		var imageURL string
		if data.Output != nil {
			imageURL = data.Output.ImageURL
			if imageURL == "" && len(data.Output.Images) > 0 {
				imageURL = data.Output.Images[0]
			}
		}
		if imageURL == "" {
			return JobResult{}, domain.NewUpstreamError(opPoll, ServiceName, ErrNoImage)
		}
		return JobResult{Status: StatusCompleted, ImageURL: imageURL}, nil
	default:
		// "pending", "processing" and anything unrecognized keep the job open.
		return JobResult{Status: StatusPending}, nil
	}
}

// Defaults returns the poll budget configured on the client.
func (c *Client) Defaults() ResolveOptions {
	return c.defaults
}

// Resolve submits prompt and polls until the job completes, returning the
// image URL. It polls exactly MaxAttempts times at most, sleeping
// PollInterval between polls but not after the last one.
func (c *Client) Resolve(ctx context.Context, prompt string, opts ResolveOptions) (string, error) {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = c.defaults.MaxAttempts
	}
	if opts.PollInterval < 0 {
		opts.PollInterval = c.defaults.PollInterval
	}

	jobID, err := c.Submit(ctx, prompt)
	if err != nil {
		return "", err
	}

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		result, err := c.Poll(ctx, jobID)
		if err != nil {
			return "", err
		}

		switch result.Status {
		case StatusCompleted:
			c.logger.InfoContext(ctx, "image job completed", "task_id", jobID, "attempts", attempt)
			return result.ImageURL, nil
		case StatusFailed:
			c.logger.WarnContext(ctx, "image job failed", "task_id", jobID, "reason", result.Reason)
			return "", domain.NewUpstreamError(opResolve, ServiceName, fmt.Errorf("%w: %s", ErrJobFailed, result.Reason))
		}

		if attempt%5 == 1 {
			c.logger.DebugContext(ctx, "image job still processing", "task_id", jobID, "attempt", attempt)
		}
		if attempt < opts.MaxAttempts {
			if err := sleep(ctx, opts.PollInterval); err != nil {
				return "", domain.FromContext(opResolve, ServiceName, err)
			}
		}
	}

	c.logger.WarnContext(ctx, "image job timed out", "task_id", jobID, "attempts", opts.MaxAttempts)
	return "", domain.NewTimeoutError(opResolve, ServiceName,
		fmt.Errorf("%w after %d polls", ErrPollExhausted, opts.MaxAttempts))
}

// do sends req with auth and decodes the envelope's data into out.
func (c *Client) do(req *http.Request, op string, out *taskData) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return domain.FromContext(op, ServiceName, ctxErr)
		}
		return domain.NewUpstreamError(op, ServiceName, fmt.Errorf("%w: %v", ErrTransport, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.NewUpstreamError(op, ServiceName,
			fmt.Errorf("%w: status %d: %s", ErrTransport, resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return domain.NewUpstreamError(op, ServiceName, fmt.Errorf("%w: invalid response body: %v", ErrTransport, err))
	}
	if !env.ok() {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("error code %d", env.Code)
		}
		return domain.NewUpstreamError(op, ServiceName, fmt.Errorf("%w: %s", ErrRejected, msg))
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return domain.NewUpstreamError(op, ServiceName, fmt.Errorf("%w: invalid data: %v", ErrTransport, err))
	}
	return nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
