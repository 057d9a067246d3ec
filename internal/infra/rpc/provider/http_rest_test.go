package provider

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPProvider_ExecuteGET(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/address/1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet {
			t.Errorf("expected method GET, got %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"chain_stats":{}}`))
	}))
	defer server.Close()

	p := NewHTTPProvider("esplora-mock", server.URL+"/api/", 5*time.Second)

	resp, err := p.Execute(context.Background(), NewGetOperation("address/1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"chain_stats":{}}` {
		t.Errorf("unexpected body %s", resp.Body)
	}

	health := p.GetHealth()
	if !health.Available || health.ErrorRate != 0 {
		t.Errorf("unexpected health %+v", health)
	}
}

func TestHTTPProvider_ExecutePOST(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected method POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "text/plain" {
			t.Errorf("expected text/plain, got %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "751e76e8199196d454941c45d1b3a323f1433bd6" {
			t.Errorf("unexpected body %s", body)
		}
		_, _ = w.Write([]byte("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"))
	}))
	defer server.Close()

	p := NewHTTPProvider("esplora-mock", server.URL, 5*time.Second)
	op := NewPostOperation("address-prefix/bc", []byte("751e76e8199196d454941c45d1b3a323f1433bd6"), "")

	resp, err := p.Execute(context.Background(), op)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4" {
		t.Errorf("unexpected body %s", resp.Body)
	}
}

func TestHTTPProvider_StatusErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantFailure bool
	}{
		{"not found is not a provider failure", http.StatusNotFound, false},
		{"server error", http.StatusInternalServerError, true},
		{"bad request", http.StatusBadRequest, true},
		{"rate limited", http.StatusTooManyRequests, true},
		{"blocked", http.StatusForbidden, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer server.Close()

			p := NewHTTPProvider("esplora-mock", server.URL, 5*time.Second)
			_, err := p.Execute(context.Background(), NewGetOperation("address/x"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsStatus(err, tt.status) {
				t.Errorf("expected status %d in error, got %v", tt.status, err)
			}

			failed := p.GetHealth().ErrorRate > 0
			if failed != tt.wantFailure {
				t.Errorf("expected failure recorded=%v, got error rate %v", tt.wantFailure, p.GetHealth().ErrorRate)
			}
		})
	}
}

func TestHTTPProvider_KeepsSendingAfterBlock(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"chain_stats":{"funded_txo_sum":500,"spent_txo_sum":200}}`))
	}))
	defer server.Close()

	p := NewHTTPProvider("esplora-mock", server.URL, 5*time.Second)
	if _, err := p.Execute(context.Background(), NewGetOperation("address/x")); !IsStatus(err, http.StatusForbidden) {
		t.Fatalf("expected 403 error, got %v", err)
	}
	if p.IsAvailable() {
		t.Error("blocked provider should report itself unavailable")
	}
	if status := p.GetHealth().MonitorStats.Status; status != StatusBlocked {
		t.Errorf("expected blocked status in health, got %s", status)
	}

	for _, addr := range []string{"address/y", "address/z"} {
		resp, err := p.Execute(context.Background(), NewGetOperation(addr))
		if err != nil {
			t.Fatalf("request after block should still be sent: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	}
	if calls != 3 {
		t.Errorf("expected 3 requests to reach the server, got %d", calls)
	}
}

func TestHTTPProvider_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	p := NewHTTPProvider("esplora-mock", server.URL, 50*time.Millisecond)
	if _, err := p.Execute(context.Background(), NewGetOperation("address/x")); err == nil {
		t.Fatal("expected timeout error")
	}
}
