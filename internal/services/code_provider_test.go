package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/workforce-api/internal/config"
)

func TestCoditoCodeProviderUsesFirstCode(t *testing.T) {
	var received coditoRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`["Ab3$xY9!", "ignored"]`))
	}))
	defer server.Close()

	code, err := NewCoditoCodeProvider(server.URL, time.Second).Generate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Ab3$xY9!", code)
	assert.Equal(t, 1, received.CodesToGenerate)
	assert.False(t, received.OnlyUniques)
	require.Len(t, received.CharactersSets, 8)
	assert.Equal(t, `\d\l\L\@`, received.CharactersSets[0])
}

func TestCoditoCodeProviderFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusServiceUnavailable, `["abc"]`, ErrCodeProviderStatus},
		{"not json", http.StatusOK, `<html>`, ErrCodeProviderResponse},
		{"empty array", http.StatusOK, `[]`, ErrCodeProviderResponse},
		{"blank code", http.StatusOK, `["  "]`, ErrCodeProviderResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewCoditoCodeProvider(server.URL, time.Second).Generate(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCoditoCodeProviderTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`["late"]`))
	}))
	defer server.Close()

	_, err := NewCoditoCodeProvider(server.URL, 20*time.Millisecond).Generate(context.Background())
	assert.Error(t, err)
}

func TestPlainCodeProviderTrimsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte("  k3Y9\n"))
	}))
	defer server.Close()

	code, err := NewPlainCodeProvider(server.URL, time.Second).Generate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "k3Y9", code)
}

func TestPlainCodeProviderEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	_, err := NewPlainCodeProvider(server.URL, time.Second).Generate(context.Background())
	assert.ErrorIs(t, err, ErrCodeProviderResponse)
}

func TestLocalCodeProvider(t *testing.T) {
	code, err := NewLocalCodeProvider(10).Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, code, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewLocalCodeProvider(10).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimitedCodeProviderHonoursContext(t *testing.T) {
	provider := NewRateLimitedCodeProvider(NewLocalCodeProvider(6), 0.001)

	_, err := provider.Generate(context.Background())
	require.NoError(t, err)

	// the single token is spent; the next wait cannot finish before the deadline
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = provider.Generate(ctx)
	assert.Error(t, err)
}

func TestNewCodeProvider(t *testing.T) {
	cfg := config.Default().CodeGen

	provider, err := NewCodeProvider(cfg)
	require.NoError(t, err)
	assert.IsType(t, &CoditoCodeProvider{}, provider)

	cfg.Provider = config.ProviderPlain
	provider, err = NewCodeProvider(cfg)
	require.NoError(t, err)
	assert.IsType(t, &PlainCodeProvider{}, provider)

	cfg.Provider = config.ProviderLocal
	cfg.RateLimit = 5
	provider, err = NewCodeProvider(cfg)
	require.NoError(t, err)
	assert.IsType(t, &RateLimitedCodeProvider{}, provider)

	cfg.Provider = "dice"
	_, err = NewCodeProvider(cfg)
	assert.Error(t, err)
}
