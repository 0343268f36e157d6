// Package oracle provides a client for the external LLM scoring service. The
// oracle is an untrusted, best-effort enhancement: every error maps to a
// local heuristic fallback at the call site.
package oracle

import (
	"math"
	"time"

	"github.com/surimlab/challenge500/internal/textscore"
)

// Config holds configuration for the oracle client
type Config struct {
	APIKey   string        `json:"api_key"`
	BaseURL  string        `json:"base_url"`
	Model    string        `json:"model"`
	Timeout  time.Duration `json:"timeout"`
	CacheTTL time.Duration `json:"cache_ttl"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:  "https://api.openai.com/v1",
		Model:    "gpt-4.1-mini",
		Timeout:  20 * time.Second,
		CacheTTL: time.Hour, // identical bodies score identically within the TTL
	}
}

// rawScores is the wire schema of the oracle response. Every numeric field is
// a pointer so a missing field is distinguishable from zero; a single missing
// or non-finite field rejects the whole response.
type rawScores struct {
	FirstSentence  *float64 `json:"firstSentence"`
	Freeze         *float64 `json:"freeze"`
	Space          *float64 `json:"space"`
	Linger         *float64 `json:"linger"`
	Bleak          *float64 `json:"bleak"`
	Detour         *float64 `json:"detour"`
	MicroRecovery  *float64 `json:"microRecovery"`
	Rhythm         *float64 `json:"rhythm"`
	MicroParticles *float64 `json:"microParticles"`

	Layer *float64 `json:"layer"`
	World *float64 `json:"world"`
	Theme *float64 `json:"theme"`

	Tags     []string `json:"tags"`
	Analysis string   `json:"analysis"`
}

// validate converts the raw wire response into OracleScores, rejecting any
// response with missing or non-finite numeric fields.
func (r *rawScores) validate() (*textscore.OracleScores, bool) {
	fields := []*float64{
		r.FirstSentence, r.Freeze, r.Space, r.Linger, r.Bleak, r.Detour,
		r.MicroRecovery, r.Rhythm, r.MicroParticles,
		r.Layer, r.World, r.Theme,
	}
	for _, f := range fields {
		if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
			return nil, false
		}
	}

	round := func(f *float64) int { return int(math.Round(*f)) }
	return &textscore.OracleScores{
		FirstSentence:  round(r.FirstSentence),
		Freeze:         round(r.Freeze),
		Space:          round(r.Space),
		Linger:         round(r.Linger),
		Bleak:          round(r.Bleak),
		Detour:         round(r.Detour),
		MicroRecovery:  round(r.MicroRecovery),
		Rhythm:         round(r.Rhythm),
		MicroParticles: round(r.MicroParticles),
		Layer:          round(r.Layer),
		World:          round(r.World),
		Theme:          round(r.Theme),
		Tags:           r.Tags,
		Analysis:       r.Analysis,
	}, true
}

// chat completions request/response envelope

type chatRequest struct {
	Model          string         `json:"model"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
