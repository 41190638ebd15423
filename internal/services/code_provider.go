package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yukikurage/workforce-api/internal/config"
	"github.com/yukikurage/workforce-api/internal/utils"
)

// CodeProvider produces one random string per call. It backs the random part
// of project codes.
type CodeProvider interface {
	Generate(ctx context.Context) (string, error)
}

var (
	ErrCodeProviderStatus   = errors.New("code provider returned a non-success status")
	ErrCodeProviderResponse = errors.New("code provider returned a malformed response")
)

const (
	// one character set per generated character: digits, lower, upper, symbols
	coditoCharacterSet = `\d\l\L\@`
	coditoCodeLength   = 8
	maxResponseBytes   = 64 << 10
)

type coditoRequest struct {
	CodesToGenerate int      `json:"codesToGenerate"`
	OnlyUniques     bool     `json:"onlyUniques"`
	CharactersSets  []string `json:"charactersSets"`
}

// CoditoCodeProvider asks a multi-code generation API for a single code and
// uses the first element of the returned array.
type CoditoCodeProvider struct {
	url    string
	client *http.Client
}

func NewCoditoCodeProvider(url string, timeout time.Duration) *CoditoCodeProvider {
	return &CoditoCodeProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *CoditoCodeProvider) Generate(ctx context.Context) (string, error) {
	sets := make([]string, coditoCodeLength)
	for i := range sets {
		sets[i] = coditoCharacterSet
	}

	payload, err := json.Marshal(coditoRequest{
		CodesToGenerate: 1,
		OnlyUniques:     false,
		CharactersSets:  sets,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode code request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build code request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := doCodeRequest(p.client, req)
	if err != nil {
		return "", err
	}

	var codes []string
	if err := json.Unmarshal(body, &codes); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCodeProviderResponse, err)
	}
	if len(codes) == 0 || strings.TrimSpace(codes[0]) == "" {
		return "", fmt.Errorf("%w: no codes returned", ErrCodeProviderResponse)
	}

	return strings.TrimSpace(codes[0]), nil
}

// PlainCodeProvider reads a bare random string from a GET endpoint.
type PlainCodeProvider struct {
	url    string
	client *http.Client
}

func NewPlainCodeProvider(url string, timeout time.Duration) *PlainCodeProvider {
	return &PlainCodeProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *PlainCodeProvider) Generate(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build code request: %w", err)
	}

	body, err := doCodeRequest(p.client, req)
	if err != nil {
		return "", err
	}

	code := strings.TrimSpace(string(body))
	if code == "" {
		return "", fmt.Errorf("%w: empty body", ErrCodeProviderResponse)
	}
	return code, nil
}

func doCodeRequest(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("code provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read code provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrCodeProviderStatus, resp.StatusCode)
	}
	return body, nil
}

// LocalCodeProvider generates codes in process.
type LocalCodeProvider struct {
	length int
}

func NewLocalCodeProvider(length int) *LocalCodeProvider {
	return &LocalCodeProvider{length: length}
}

func (p *LocalCodeProvider) Generate(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return utils.GenerateRandomCode(p.length)
}

// RateLimitedCodeProvider waits for a token before delegating to next.
type RateLimitedCodeProvider struct {
	next    CodeProvider
	limiter *rate.Limiter
}

func NewRateLimitedCodeProvider(next CodeProvider, perSecond float64) *RateLimitedCodeProvider {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedCodeProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (p *RateLimitedCodeProvider) Generate(ctx context.Context) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}
	return p.next.Generate(ctx)
}

// NewCodeProvider builds the provider selected by cfg.Provider, rate limited
// when cfg.RateLimit is positive.
func NewCodeProvider(cfg config.CodeGenConfig) (CodeProvider, error) {
	var provider CodeProvider
	switch cfg.Provider {
	case config.ProviderCodito:
		provider = NewCoditoCodeProvider(cfg.URL, cfg.Timeout)
	case config.ProviderPlain:
		provider = NewPlainCodeProvider(cfg.URL, cfg.Timeout)
	case config.ProviderLocal:
		provider = NewLocalCodeProvider(cfg.Length)
	default:
		return nil, fmt.Errorf("unsupported code provider %q", cfg.Provider)
	}

	if cfg.RateLimit > 0 {
		provider = NewRateLimitedCodeProvider(provider, cfg.RateLimit)
	}
	return provider, nil
}
