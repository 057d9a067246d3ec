package routing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/vietddude/btcprobe/internal/infra/rpc/provider"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err    error
		expect ErrorAction
	}{
		{&provider.StatusError{StatusCode: http.StatusTooManyRequests}, ActionFailover},
		{&provider.StatusError{StatusCode: http.StatusForbidden}, ActionFailover},
		{&provider.StatusError{StatusCode: http.StatusNotFound}, ActionFatal},
		{&provider.StatusError{StatusCode: http.StatusBadRequest}, ActionFatal},
		{&provider.StatusError{StatusCode: http.StatusRequestTimeout}, ActionRetry},
		{&provider.StatusError{StatusCode: http.StatusBadGateway}, ActionRetry},
		{fmt.Errorf("wrapped: %w", &provider.StatusError{StatusCode: http.StatusNotFound}), ActionFatal},
		{errors.New("provider throttled, retry after: 1m0s"), ActionFailover},
		{errors.New("project rate limit exceeded"), ActionFailover},
		{context.Canceled, ActionFatal},
		{errors.New("connection reset by peer"), ActionRetry},
		{errors.New("timeout"), ActionRetry},
	}

	for _, tt := range tests {
		if got := ClassifyError(tt.err); got != tt.expect {
			t.Errorf("ClassifyError(%q) = %v, want %v", tt.err, got, tt.expect)
		}
	}
}

type scriptedProvider struct {
	errs  []error
	calls int
}

func (s *scriptedProvider) GetName() string                  { return "scripted" }
func (s *scriptedProvider) GetHealth() provider.HealthStatus { return provider.HealthStatus{} }
func (s *scriptedProvider) IsAvailable() bool                { return true }
func (s *scriptedProvider) Close() error                     { return nil }

func (s *scriptedProvider) Execute(ctx context.Context, op provider.Operation) (*provider.Response, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	return &provider.Response{StatusCode: http.StatusOK, Body: []byte("ok")}, nil
}

var fastRetry = RetryConfig{
	MaxAttempts:     3,
	InitialDelay:    time.Millisecond,
	MaxDelay:        5 * time.Millisecond,
	BackoffMultiple: 2,
}

func TestExecuteWithRetry_RecoversFromTransientErrors(t *testing.T) {
	p := &scriptedProvider{errs: []error{errors.New("connection reset"), errors.New("eof")}}

	resp, err := ExecuteWithRetry(context.Background(), p, provider.NewGetOperation("x"), fastRetry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "ok" {
		t.Errorf("unexpected body %s", resp.Body)
	}
	if p.calls != 3 {
		t.Errorf("expected 3 calls, got %d", p.calls)
	}
}

func TestExecuteWithRetry_StopsOnFatal(t *testing.T) {
	p := &scriptedProvider{errs: []error{&provider.StatusError{StatusCode: http.StatusNotFound}}}

	_, err := ExecuteWithRetry(context.Background(), p, provider.NewGetOperation("x"), fastRetry)
	if !provider.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 error, got %v", err)
	}
	if p.calls != 1 {
		t.Errorf("expected 1 call, got %d", p.calls)
	}
}

func TestExecuteWithRetry_SingleAttemptByDefault(t *testing.T) {
	p := &scriptedProvider{errs: []error{errors.New("connection refused")}}

	_, err := ExecuteWithRetry(context.Background(), p, provider.NewGetOperation("x"), DefaultRetryConfig)
	if err == nil {
		t.Fatal("expected error")
	}
	if p.calls != 1 {
		t.Errorf("expected 1 call, got %d", p.calls)
	}
}

func TestExecuteWithRetry_GivesUp(t *testing.T) {
	boom := errors.New("connection refused")
	p := &scriptedProvider{errs: []error{boom, boom, boom, boom}}

	_, err := ExecuteWithRetry(context.Background(), p, provider.NewGetOperation("x"), fastRetry)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if p.calls != 3 {
		t.Errorf("expected 3 calls, got %d", p.calls)
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := RetryConfig{InitialDelay: time.Second, MaxDelay: 3 * time.Second, BackoffMultiple: 2}

	if d := calculateBackoff(0, cfg); d != time.Second {
		t.Errorf("attempt 0: got %v", d)
	}
	if d := calculateBackoff(1, cfg); d != 2*time.Second {
		t.Errorf("attempt 1: got %v", d)
	}
	if d := calculateBackoff(5, cfg); d != 3*time.Second {
		t.Errorf("attempt 5: got %v", d)
	}
}
