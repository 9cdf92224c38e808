// Package genai is a lightweight facade over the Gemini REST API. Providers
// translate domain requests into ordered content parts; this package owns the
// wire format, transport, and response envelope handling.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// Options controls how the client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	ImageModel string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client issues generateContent and predict calls against the Gemini API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	imageModel string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Part is one element of the request content. Image parts carry base64 data
// inline; exactly one text part closes each request.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData is a base64-encoded binary payload with its mime type.
type InlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// ImagePart builds an inline-image part from an encoded payload.
func ImagePart(b64, mime string) Part {
	return Part{InlineData: &InlineData{MimeType: mime, Data: b64}}
}

// Schema constrains a structured-output response. Only the subset the studio
// needs is modeled: flat objects with named string properties.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// StringObjectSchema builds an OBJECT schema whose named properties are all
// required STRING fields.
func StringObjectSchema(fields ...string) *Schema {
	props := make(map[string]*Schema, len(fields))
	for _, f := range fields {
		props[f] = &Schema{Type: "STRING"}
	}
	return &Schema{Type: "OBJECT", Properties: props, Required: fields}
}

// GenerationConfig tunes a generateContent call.
type GenerationConfig struct {
	CandidateCount   int     `json:"candidateCount,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

// Content groups the ordered parts of one request or candidate turn.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts,omitempty"`
}

type generateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate is one result in the response envelope.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// ContentResponse is the generateContent response envelope.
type ContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Status  string `json:"status,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// ImageRequest drives the dedicated text-to-image endpoint.
type ImageRequest struct {
	Prompt         string
	AspectRatio    domain.AspectRatio
	NegativePrompt string
	Seed           *int64
	SampleCount    int
}

// GeneratedImage is one prediction from the text-to-image endpoint.
type GeneratedImage struct {
	Data     string
	MimeType string
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount    int    `json:"sampleCount,omitempty"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
	NegativePrompt string `json:"negativePrompt,omitempty"`
	Seed           *int64 `json:"seed,omitempty"`
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

const defaultTimeout = 60 * time.Second

// NewClient constructs a client with sane defaults. Callers may provide a nil
// HTTP client; a reusable one with a 60s timeout is created. The timeout is
// the only retry/timeout policy the service applies: calls are never retried.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("genai: api key is required")
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash-image-preview"
	}
	imageModel := opts.ImageModel
	if imageModel == "" {
		imageModel = "imagen-4.0-generate-001"
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		model:      model,
		imageModel: imageModel,
		httpClient: client,
		logger:     opts.Logger,
	}, nil
}

// Model returns the configured multimodal model identifier.
func (c *Client) Model() string {
	return c.model
}

// GenerateContent sends the ordered parts (images first, one text part last)
// to the multimodal model and returns the raw response envelope.
func (c *Client) GenerateContent(ctx context.Context, parts []Part, cfg *GenerationConfig) (*ContentResponse, error) {
	payload := generateContentRequest{
		Contents:         []Content{{Role: "user", Parts: parts}},
		GenerationConfig: cfg,
	}
	var response ContentResponse
	if err := c.invoke(ctx, fmt.Sprintf("/models/%s:generateContent", url.PathEscape(c.model)), payload, &response); err != nil {
		return nil, err
	}
	c.logger.Debug().
		Str("model", c.model).
		Int("parts", len(parts)).
		Int("candidates", len(response.Candidates)).
		Msg("genai: generateContent completed")
	return &response, nil
}

// GenerateImages calls the dedicated text-to-image endpoint. Seed and
// negative prompt are forwarded only when set.
func (c *Client) GenerateImages(ctx context.Context, req ImageRequest) ([]GeneratedImage, error) {
	sampleCount := req.SampleCount
	if sampleCount <= 0 {
		sampleCount = 1
	}
	payload := predictRequest{
		Instances: []predictInstance{{Prompt: req.Prompt}},
		Parameters: predictParameters{
			SampleCount:    sampleCount,
			AspectRatio:    req.AspectRatio.String(),
			NegativePrompt: req.NegativePrompt,
			Seed:           req.Seed,
		},
	}
	var response predictResponse
	if err := c.invoke(ctx, fmt.Sprintf("/models/%s:predict", url.PathEscape(c.imageModel)), payload, &response); err != nil {
		return nil, err
	}
	images := make([]GeneratedImage, 0, len(response.Predictions))
	for _, p := range response.Predictions {
		if p.BytesBase64Encoded == "" {
			continue
		}
		mime := p.MimeType
		if mime == "" {
			mime = "image/png"
		}
		images = append(images, GeneratedImage{Data: p.BytesBase64Encoded, MimeType: mime})
	}
	c.logger.Debug().
		Str("model", c.imageModel).
		Int("images", len(images)).
		Msg("genai: predict completed")
	return images, nil
}

func (c *Client) invoke(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("genai: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("genai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("genai: call %s: %w", path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("genai: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var apiErr errorResponse
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("genai: %s (http %d): %s", path, resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("genai: %s returned http %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("genai: decode response: %w", err)
	}
	return nil
}

// FirstInlineImage extracts the first inline-image part of the first
// candidate. Every image-producing operation shares this helper so the "no
// image returned" case is classified exactly once: the absence of an image
// part maps to domain.ErrNoImage regardless of how the refusal was phrased.
func FirstInlineImage(resp *ContentResponse) (*InlineData, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, domain.ErrNoImage
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return part.InlineData, nil
		}
	}
	return nil, domain.ErrNoImage
}

// FirstText extracts the concatenated text of the first candidate.
func FirstText(resp *ContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}
