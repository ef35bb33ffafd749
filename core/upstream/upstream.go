// Package upstream builds the HTTP clients used to talk to the pricing, media and reference
// providers and decodes their JSON responses into validated structs.
package upstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"auction-aggregator/core/validation"

	"github.com/go-resty/resty/v2"
)

// Config holds transport settings shared by every upstream provider.
type Config struct {
	// TimeoutSeconds bounds a single request, including retries.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Retries is the number of retries on 429 and 5xx responses.
	Retries int `mapstructure:"retries" default:"2"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"auction-aggregator/1.0"`
}

// Timeout returns the configured request timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StatusError reports a non-success HTTP response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// NewClient creates a resty client with timeouts and retry on throttling or server errors.
func NewClient(cfg Config) *resty.Client {
	client := resty.New().
		SetTimeout(cfg.Timeout()).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")

	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil || r == nil {
			return false
		}
		return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
	})

	return client
}

// Decode checks the response status, unmarshals the body into out and validates it.
func Decode(resp *resty.Response, out any) error {
	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %v", validation.ErrSchemaMismatch, err)
	}
	return validation.Struct(out)
}

// DecodeList decodes a JSON array response and validates every element.
func DecodeList[T any](resp *resty.Response) ([]T, error) {
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", validation.ErrSchemaMismatch, err)
	}
	for i := range items {
		if err := validation.Struct(&items[i]); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return items, nil
}

func checkStatus(resp *resty.Response) error {
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return &StatusError{StatusCode: resp.StatusCode(), URL: resp.Request.URL}
	}
	return nil
}
