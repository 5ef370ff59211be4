package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"submarine-api/pkg/client/model"
)

const apiPrefix = "/api/v1"

// APIClient is the shared transport behind every API service.
type APIClient struct {
	baseURL   string
	http      *http.Client
	userAgent string
}

type Option func(*APIClient)

func WithHTTPClient(h *http.Client) Option {
	return func(c *APIClient) {
		if h != nil {
			c.http = h
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *APIClient) {
		c.userAgent = ua
	}
}

func New(baseURL string, opts ...Option) (*APIClient, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("baseURL must not be empty")
	}
	c := &APIClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 30 * time.Second},
		userAgent: "submarine-go-sdk",
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// envelope mirrors model.JsonResponse but keeps the result raw so callers can
// decode it into a concrete type.
type envelope struct {
	Code       int                        `json:"code"`
	Success    bool                       `json:"success"`
	Message    string                     `json:"message"`
	Result     json.RawMessage            `json:"result"`
	Attributes map[string]json.RawMessage `json:"attributes"`
}

// Do performs one API call and returns the whole response envelope with the
// result decoded generically.
func (c *APIClient) Do(ctx context.Context, method, path string, in any) (*model.JsonResponse, error) {
	env, err := c.roundTrip(ctx, method, path, in)
	if err != nil {
		return nil, err
	}
	out := &model.JsonResponse{
		Code:    env.Code,
		Success: env.Success,
		Message: env.Message,
	}
	if len(env.Result) > 0 {
		var v any
		if err := json.Unmarshal(env.Result, &v); err != nil {
			return nil, fmt.Errorf("decoding result: %w", err)
		}
		out.Result = v
	}
	if len(env.Attributes) > 0 {
		out.Attributes = make(map[string]any, len(env.Attributes))
		for k, raw := range env.Attributes {
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("decoding attribute %q: %w", k, err)
			}
			out.Attributes[k] = v
		}
	}
	return out, nil
}

// DoResult performs one API call and decodes the envelope result into out.
func (c *APIClient) DoResult(ctx context.Context, method, path string, in, out any) error {
	env, err := c.roundTrip(ctx, method, path, in)
	if err != nil {
		return err
	}
	if out == nil || len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("decoding result: %w", err)
	}
	return nil
}

func (c *APIClient) roundTrip(ctx context.Context, method, path string, in any) (*envelope, error) {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{Kind: classifyStatus(resp.StatusCode), Status: resp.StatusCode, Message: resp.Status}
		}
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		return nil, &APIError{
			Kind:    classifyStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: env.Message,
		}
	}
	return &env, nil
}
