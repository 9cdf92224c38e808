package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(Options{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		Logger:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("expected an error for a missing api key")
	}
}

func TestGenerateContentSendsKeyAndParts(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateContentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(ContentResponse{
			Candidates: []Candidate{{Content: Content{Parts: []Part{
				{InlineData: &InlineData{MimeType: "image/png", Data: "QUJD"}},
			}}}},
		})
	})

	parts := []Part{ImagePart("QUJD", "image/png"), TextPart("isolate the product")}
	resp, err := client.GenerateContent(context.Background(), parts, nil)
	if err != nil {
		t.Fatalf("GenerateContent returned error: %v", err)
	}
	if gotKey != "test-key" {
		t.Fatalf("x-goog-api-key = %q", gotKey)
	}
	if !strings.Contains(gotPath, ":generateContent") {
		t.Fatalf("path = %q, want generateContent call", gotPath)
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 2 {
		t.Fatalf("request contents = %+v", gotReq.Contents)
	}
	if gotReq.Contents[0].Parts[1].Text != "isolate the product" {
		t.Fatalf("text part must come last, got %+v", gotReq.Contents[0].Parts)
	}
	img, err := FirstInlineImage(resp)
	if err != nil {
		t.Fatalf("FirstInlineImage returned error: %v", err)
	}
	if img.Data != "QUJD" || img.MimeType != "image/png" {
		t.Fatalf("inline image = %+v", img)
	}
}

func TestGenerateContentStructuredConfig(t *testing.T) {
	var gotReq generateContentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(ContentResponse{
			Candidates: []Candidate{{Content: Content{Parts: []Part{{Text: `{"status":"New"}`}}}}},
		})
	})

	cfg := &GenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   StringObjectSchema("status"),
	}
	resp, err := client.GenerateContent(context.Background(), []Part{TextPart("describe")}, cfg)
	if err != nil {
		t.Fatalf("GenerateContent returned error: %v", err)
	}
	if gotReq.GenerationConfig == nil || gotReq.GenerationConfig.ResponseMimeType != "application/json" {
		t.Fatalf("generationConfig not forwarded: %+v", gotReq.GenerationConfig)
	}
	schema := gotReq.GenerationConfig.ResponseSchema
	if schema == nil || schema.Type != "OBJECT" || schema.Properties["status"] == nil {
		t.Fatalf("responseSchema not forwarded: %+v", schema)
	}
	if got := FirstText(resp); got != `{"status":"New"}` {
		t.Fatalf("FirstText = %q", got)
	}
}

func TestGenerateContentErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota exceeded"}}`))
	})
	_, err := client.GenerateContent(context.Background(), []Part{TextPart("x")}, nil)
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error = %v, want API message surfaced", err)
	}
}

func TestGenerateImagesPredict(t *testing.T) {
	var gotPath string
	var gotReq predictRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(`{"predictions":[{"bytesBase64Encoded":"QUJD","mimeType":"image/png"},{"bytesBase64Encoded":""}]}`))
	})

	seed := int64(42)
	images, err := client.GenerateImages(context.Background(), ImageRequest{
		Prompt:         "red sneaker on marble",
		AspectRatio:    domain.AspectLandscapeWide,
		NegativePrompt: "text, watermark",
		Seed:           &seed,
	})
	if err != nil {
		t.Fatalf("GenerateImages returned error: %v", err)
	}
	if !strings.Contains(gotPath, ":predict") {
		t.Fatalf("path = %q, want predict call", gotPath)
	}
	if gotReq.Parameters.SampleCount != 1 {
		t.Fatalf("sampleCount = %d, want default 1", gotReq.Parameters.SampleCount)
	}
	if gotReq.Parameters.AspectRatio != "16:9" {
		t.Fatalf("aspectRatio = %q", gotReq.Parameters.AspectRatio)
	}
	if gotReq.Parameters.Seed == nil || *gotReq.Parameters.Seed != 42 {
		t.Fatalf("seed not forwarded: %+v", gotReq.Parameters.Seed)
	}
	if len(images) != 1 || images[0].Data != "QUJD" || images[0].MimeType != "image/png" {
		t.Fatalf("images = %+v, want the empty prediction dropped", images)
	}
}

func TestFirstInlineImageNoImage(t *testing.T) {
	cases := []*ContentResponse{
		nil,
		{},
		{Candidates: []Candidate{{Content: Content{Parts: []Part{{Text: "I cannot generate that."}}}}}},
	}
	for i, resp := range cases {
		if _, err := FirstInlineImage(resp); !errors.Is(err, domain.ErrNoImage) {
			t.Fatalf("case %d: error = %v, want domain.ErrNoImage", i, err)
		}
	}
}

func TestFirstTextConcatenatesParts(t *testing.T) {
	resp := &ContentResponse{Candidates: []Candidate{{Content: Content{Parts: []Part{
		{Text: "  hello"},
		{Text: " world  "},
	}}}}}
	if got := FirstText(resp); got != "hello world" {
		t.Fatalf("FirstText = %q", got)
	}
	if got := FirstText(nil); got != "" {
		t.Fatalf("FirstText(nil) = %q", got)
	}
}
