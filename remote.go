package qtoken

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/theapemachine/errnie"
)

// RemoteOption configures a RemoteBackend.
type RemoteOption func(*RemoteBackend)

func WithHTTPClient(client *http.Client) RemoteOption {
	return func(rb *RemoteBackend) {
		rb.client = client
	}
}

// WithRemoteRetry sets how often transient failures are retried.
func WithRemoteRetry(attempts int, strategy RetryStrategy) RemoteOption {
	return func(rb *RemoteBackend) {
		rb.retry.MaxAttempts = attempts
		rb.retry.Strategy = strategy
	}
}

/*
RemoteBackend hands programs to a simulation service over HTTP. The request
body is a msgpack RunRequest and the response a msgpack Result. Network errors
and 5xx responses are retried; any other failure is returned at once.
*/
type RemoteBackend struct {
	url    string
	client *http.Client
	retry  *RetryPolicy
}

func NewRemoteBackend(url string, opts ...RemoteOption) *RemoteBackend {
	rb := &RemoteBackend{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		retry: &RetryPolicy{
			MaxAttempts: 3,
			Strategy:    &ExponentialBackoff{Initial: 100 * time.Millisecond},
			Filter:      isTransient,
		},
	}

	for _, opt := range opts {
		opt(rb)
	}

	return rb
}

func (rb *RemoteBackend) Name() string {
	return BackendRemote
}

func (rb *RemoteBackend) Run(ctx context.Context, program *Program, shots int) (*Result, error) {
	body, err := EncodeRunRequest(&RunRequest{Program: program, Shots: shots})
	if err != nil {
		return nil, err
	}

	var result *Result

	err = rb.retry.Do(ctx, func(attempt int) error {
		errnie.Info(
			"RemoteBackend.Run - program %s, attempt %d, url %s",
			program.ID, attempt, rb.url,
		)

		res, postErr := rb.post(ctx, body)
		if postErr != nil {
			return postErr
		}

		result = res
		return nil
	})

	if err != nil {
		if isTransient(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrBackendUnavailable, rb.url, err)
		}

		return nil, err
	}

	return result, nil
}

// transientError marks failures worth another attempt.
type transientError struct {
	err error
}

func (te *transientError) Error() string {
	return te.err.Error()
}

func (te *transientError) Unwrap() error {
	return te.err
}

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

func (rb *RemoteBackend) post(ctx context.Context, body []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rb.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", ContentType)
	req.Header.Set("Accept", ContentType)

	resp, err := rb.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		return nil, &transientError{err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transientError{err: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &transientError{err: fmt.Errorf("status %s", resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("remote backend rejected program: status %s: %s", resp.Status, bytes.TrimSpace(payload))
	}

	return DecodeResult(payload)
}
