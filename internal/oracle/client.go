package oracle

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/surimlab/challenge500/internal/errors"
	"github.com/surimlab/challenge500/internal/logging"
	"github.com/surimlab/challenge500/internal/textscore"
)

// Package-level logger specific to the oracle service
var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar) // Dynamic level control
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "oracle.log")
	initialLevel := slog.LevelDebug
	serviceLevelVar.Set(initialLevel)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "oracle", serviceLevelVar)
	if err != nil {
		// Fallback: disable service logging rather than failing the process
		log.Printf("Failed to initialize oracle file logger at %s: %v. Service logging disabled.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "oracle")
		closeLogger = func() error { return nil }
	}
}

// systemPrompt instructs the oracle to quantify the aesthetic dimensions of a
// short-form piece and return JSON only.
const systemPrompt = "500~1250바이트 초단편의 미학 차원을 정량 평가하세요. 설명 없이 JSON만 반환."

// Client provides access to the external scoring oracle. Safe for concurrent
// use.
type Client struct {
	config     Config
	httpClient *http.Client
	cache      *cache.Cache
}

// NewClient creates a new oracle client
func NewClient(config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, errors.Newf("oracle API key is required").
			Category(errors.CategoryConfiguration).
			Component("oracle").
			Build()
	}

	// Use defaults for missing config values
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	if config.Model == "" {
		config.Model = DefaultConfig().Model
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultConfig().CacheTTL
	}

	client := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		cache: cache.New(config.CacheTTL, config.CacheTTL*2),
	}

	logger.Info("oracle client initialized",
		"base_url", config.BaseURL,
		"model", config.Model,
		"timeout", config.Timeout,
		"cache_ttl", config.CacheTTL)

	return client, nil
}

// Close cleans up client resources
func (c *Client) Close() {
	logger.Info("closing oracle client")
	if closeLogger != nil {
		if err := closeLogger(); err != nil {
			log.Printf("Error closing oracle logger: %v", err)
		}
	}
}

// Evaluate scores title/body through the oracle. Every returned error means
// "fall back to the local heuristic"; no partial result is ever returned.
func (c *Client) Evaluate(ctx context.Context, title, body string) (*textscore.OracleScores, error) {
	cacheKey := scoreCacheKey(title, body)
	if cached, found := c.cache.Get(cacheKey); found {
		if scores, ok := cached.(*textscore.OracleScores); ok {
			logger.Debug("oracle cache hit", "cache_key", cacheKey)
			return scores, nil
		}
	}

	start := time.Now()
	scores, err := c.request(ctx, title, body)
	if err != nil {
		logger.Warn("oracle evaluation failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	c.cache.Set(cacheKey, scores, cache.DefaultExpiration)
	logger.Debug("oracle evaluation succeeded",
		"duration_ms", time.Since(start).Milliseconds(),
		"cache_key", cacheKey)
	return scores, nil
}

func (c *Client) request(ctx context.Context, title, body string) (*textscore.OracleScores, error) {
	payload := chatRequest{
		Model:       c.config.Model,
		Temperature: 0.2,
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   "SurimEvalSchema",
				Strict: true,
				Schema: scoreSchema(),
			},
		},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("제목: %s\n본문:\n%s", title, body)},
		},
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryProcessing).
			Component("oracle").
			Build()
	}

	url := c.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryNetwork).
			Component("oracle").
			Build()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryNetwork).
			Component("oracle").
			Context("url", url).
			Build()
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Debug("failed to close oracle response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("oracle returned status %d", resp.StatusCode).
			Category(errors.CategoryHTTP).
			Component("oracle").
			Context("status_code", resp.StatusCode).
			Build()
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryHTTP).
			Component("oracle").
			Build()
	}
	if len(envelope.Choices) == 0 {
		return nil, errors.Newf("oracle response has no choices").
			Category(errors.CategoryHTTP).
			Component("oracle").
			Build()
	}

	var raw rawScores
	if err := json.Unmarshal([]byte(envelope.Choices[0].Message.Content), &raw); err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryProcessing).
			Component("oracle").
			Build()
	}

	scores, ok := raw.validate()
	if !ok {
		return nil, errors.Newf("oracle response is missing required score fields").
			Category(errors.CategoryProcessing).
			Component("oracle").
			Build()
	}
	return scores, nil
}

// scoreCacheKey derives a stable cache key from the submission content.
func scoreCacheKey(title, body string) string {
	h := sha256.Sum256([]byte(title + "\x00" + body))
	return "eval:" + hex.EncodeToString(h[:16])
}

// scoreSchema is the strict JSON schema the oracle must satisfy.
func scoreSchema() map[string]any {
	numeric := []string{
		"firstSentence", "freeze", "space", "linger", "bleak", "detour",
		"microRecovery", "rhythm", "microParticles",
		"layer", "world", "theme",
	}
	props := make(map[string]any, len(numeric)+2)
	required := make([]string, 0, len(numeric)+2)
	for _, name := range numeric {
		props[name] = map[string]any{"type": "number"}
		required = append(required, name)
	}
	props["tags"] = map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
	props["analysis"] = map[string]any{"type": "string"}
	required = append(required, "tags", "analysis")

	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}
