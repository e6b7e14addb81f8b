package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHFBaseURL = "https://api-inference.huggingface.co/models"
	defaultHFModel   = "google/flan-t5-large"

	// maxHFResponseBytes caps how much of a response body is read.
	maxHFResponseBytes = 1 << 20
)

var hfGenerationSchema = &Schema{
	Name: "hf-generation",
	Definition: map[string]any{
		"anyOf": []any{
			map[string]any{
				"type":  "array",
				"items": map[string]any{"$ref": "#/$defs/generation"},
			},
			map[string]any{"$ref": "#/$defs/generation"},
		},
		"$defs": map[string]any{
			"generation": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"generated_text": map[string]any{"type": "string"},
				},
				"required": []any{"generated_text"},
			},
		},
	},
}

var hfErrorSchema = &Schema{
	Name: "hf-error",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"error": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string"},
					map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
			"estimated_time": map[string]any{"type": "number"},
		},
		"required": []any{"error"},
	},
}

// HuggingFaceProvider implements Provider against the Hugging Face
// Inference API text-generation endpoint.
type HuggingFaceProvider struct {
	client  *http.Client
	baseURL string
	model   string
	token   string
}

// NewHuggingFaceProvider creates a provider for the configured model.
func NewHuggingFaceProvider(cfg HuggingFaceConfig) (*HuggingFaceProvider, error) {
	if cfg.APIToken == "" {
		return nil, &ErrConfiguration{Key: "TUTOR_HF_API_TOKEN", Msg: hfTokenMissing}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultHFBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultHFModel
	}

	return &HuggingFaceProvider{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		token:   cfg.APIToken,
	}, nil
}

type hfRequest struct {
	Inputs     string        `json:"inputs"`
	Parameters *hfParameters `json:"parameters,omitempty"`
}

type hfParameters struct {
	MaxLength   int     `json:"max_length,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	DoSample    *bool   `json:"do_sample,omitempty"`
}

func buildHFRequest(req Request) hfRequest {
	body := hfRequest{Inputs: req.Prompt}
	if req.MaxTokens == 0 && req.Temperature == 0 && req.TopP == 0 {
		return body
	}

	params := &hfParameters{
		MaxLength:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
	}
	if req.Temperature > 0 || req.TopP > 0 {
		sample := true
		params.DoSample = &sample
	}
	body.Parameters = params
	return body
}

func (p *HuggingFaceProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	payload, err := json.Marshal(buildHFRequest(req))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.token)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxHFResponseBytes))
	if err != nil {
		return nil, &ErrProviderUnavailable{Status: httpResp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	env := decodeHFEnvelope(body)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, mapHFStatus(httpResp, env)
	}

	switch env.Kind {
	case hfKindGeneration:
		if env.Text == "" {
			return nil, &ErrEmptyResponse{}
		}
		return &Response{
			Text:       env.Text,
			Model:      p.model,
			StopReason: "end",
		}, nil
	case hfKindError:
		return nil, &ErrProviderUnavailable{Status: httpResp.StatusCode, Err: errors.New(env.Error)}
	default:
		return nil, validateResponse(hfGenerationSchema, body)
	}
}

func (p *HuggingFaceProvider) ModelID() string {
	return p.model
}

func (p *HuggingFaceProvider) endpoint() string {
	return p.baseURL + "/" + p.model
}

// hfKind tags which wire shape a response body matched.
type hfKind int

const (
	hfKindUnknown hfKind = iota
	hfKindGeneration
	hfKindError
)

// hfEnvelope is the decoded form of any Hugging Face response body.
type hfEnvelope struct {
	Kind hfKind

	// Text is the first generation's text when Kind is hfKindGeneration.
	Text string

	// Error and EstimatedTime are set when Kind is hfKindError.
	Error         string
	EstimatedTime float64
}

// decodeHFEnvelope classifies a response body by shape. Bodies that are not
// JSON or match neither schema come back as hfKindUnknown.
func decodeHFEnvelope(body []byte) hfEnvelope {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return hfEnvelope{Kind: hfKindUnknown}
	}

	switch {
	case matchesSchema(hfGenerationSchema, parsed):
		return hfEnvelope{Kind: hfKindGeneration, Text: firstGeneratedText(parsed)}
	case matchesSchema(hfErrorSchema, parsed):
		obj := parsed.(map[string]any)
		env := hfEnvelope{Kind: hfKindError}
		switch v := obj["error"].(type) {
		case string:
			env.Error = v
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, item.(string))
			}
			env.Error = strings.Join(parts, "; ")
		}
		if t, ok := obj["estimated_time"].(float64); ok {
			env.EstimatedTime = t
		}
		return env
	}
	return hfEnvelope{Kind: hfKindUnknown}
}

func firstGeneratedText(parsed any) string {
	switch v := parsed.(type) {
	case []any:
		if len(v) == 0 {
			return ""
		}
		return firstGeneratedText(v[0])
	case map[string]any:
		s, _ := v["generated_text"].(string)
		return s
	}
	return ""
}

// mapHFStatus converts a non-2xx response into the error taxonomy.
func mapHFStatus(resp *http.Response, env hfEnvelope) error {
	msg := env.Error
	var cause error
	if msg != "" {
		cause = errors.New(msg)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &ErrAuth{Credential: "Hugging Face API token", Err: cause}
	case http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")), Err: cause}
	case http.StatusBadRequest:
		return &ErrBadRequest{Message: msg, Err: cause}
	}

	if msg == "" {
		msg = "Failed to get response from model"
	}
	if env.EstimatedTime > 0 {
		msg = fmt.Sprintf("%s (estimated time %.0fs)", msg, env.EstimatedTime)
	}
	return &ErrProviderUnavailable{
		Status: resp.StatusCode,
		Err:    fmt.Errorf("HTTP %d: %s", resp.StatusCode, msg),
	}
}

// parseRetryAfter accepts either delay-seconds or an HTTP date.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
