// Package apiclient is the single point of HTTP communication with the
// roadmap backend. Every call is one attempt: no retry, no timeout, no
// backoff. Only the caller's context can cancel it.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/patric-chuzhbe/nexusweb/internal/models"
)

const (
	LoginEndpoint    = "/auth/login"
	SignupEndpoint   = "/auth/signup"
	GenerateEndpoint = "/generate"
)

// ErrTransport marks failures where no HTTP response was received.
var ErrTransport = errors.New("backend unreachable")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	// Message is the backend's own message, or a generic fallback.
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	http *resty.Client
}

type initOptions struct {
	httpClient *http.Client
}

// Option configures New.
type Option func(*initOptions)

// WithHTTPClient makes resty use the given client, e.g. a test server's one.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(options *initOptions) {
		options.httpClient = httpClient
	}
}

func New(baseURL string, optionsProto ...Option) *Client {
	options := &initOptions{}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	var r *resty.Client
	if options.httpClient != nil {
		r = resty.NewWithClient(options.httpClient)
	} else {
		r = resty.New()
	}
	r.SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: r}
}

// Do sends body as JSON to endpoint and decodes a 2xx answer into result.
// The bearer token is attached only when non-empty. result may be nil.
func (c *Client) Do(
	ctx context.Context,
	method string,
	endpoint string,
	token string,
	body interface{},
	result interface{},
) error {
	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, endpoint, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode(),
			Message:    extractMessage(resp.Body(), resp.StatusCode()),
		}
	}

	if result == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, endpoint, err)
	}

	return nil
}

func extractMessage(body []byte, statusCode int) string {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Message != "" {
			return errResp.Message
		}
		if errResp.Error != "" {
			return errResp.Error
		}
	}

	return fmt.Sprintf("Request failed with status %d", statusCode)
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var result models.AuthResponse
	err := c.Do(
		ctx,
		http.MethodPost,
		LoginEndpoint,
		"",
		models.LoginRequest{Email: email, Password: password},
		&result,
	)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	var result models.AuthResponse
	err := c.Do(
		ctx,
		http.MethodPost,
		SignupEndpoint,
		"",
		models.SignupRequest{Name: name, Email: email, Password: password},
		&result,
	)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GenerateRoadmap posts the idea as given; trimming is the caller's job.
func (c *Client) GenerateRoadmap(ctx context.Context, token, projectIdea string) (models.RoadmapResult, error) {
	var result json.RawMessage
	err := c.Do(
		ctx,
		http.MethodPost,
		GenerateEndpoint,
		token,
		models.GenerateRequest{ProjectIdea: projectIdea},
		&result,
	)
	if err != nil {
		return nil, err
	}

	return result, nil
}
