// Package studio implements the image tasks offered by the product photo
// studio: compositing, editing, generation, style transfer, and structured
// product description.
package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/imgio"
	"server/internal/promptgen"
	"server/internal/providers/genai"
)

// Generator is the provider contract the service depends on. The concrete
// implementation is genai.Client; tests inject stubs.
type Generator interface {
	GenerateContent(ctx context.Context, parts []genai.Part, cfg *genai.GenerationConfig) (*genai.ContentResponse, error)
	GenerateImages(ctx context.Context, req genai.ImageRequest) ([]genai.GeneratedImage, error)
}

// Result is a generated image payload, base64-encoded as received from the
// provider boundary.
type Result struct {
	Data string
	MIME string
}

// Service orchestrates prompt assembly, image encoding, and provider calls.
type Service struct {
	client Generator
	logger zerolog.Logger
}

// NewService wires the studio over a provider client.
func NewService(client Generator, logger zerolog.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("studio: generator client is required")
	}
	return &Service{client: client, logger: logger}, nil
}

const (
	minStyleReferences = 1
	maxStyleReferences = 5
)

// CompositeProduct isolates the uploaded product and, unless transparent
// output is requested, stages it in a background generated from the text
// description.
func (s *Service) CompositeProduct(ctx context.Context, image imgio.File, backgroundText string, transparent bool, aspect domain.AspectRatio) (*Result, error) {
	const task = "composite product"
	prompt := promptgen.Composite(backgroundText, transparent, aspect)
	result, err := s.generateFromParts(ctx, task, []imgio.File{image}, prompt)
	return result, domain.WrapService(task, err)
}

// EditImage applies a free-form instruction to the uploaded image.
func (s *Service) EditImage(ctx context.Context, image imgio.File, instruction string) (*Result, error) {
	const task = "edit image"
	result, err := s.generateFromParts(ctx, task, []imgio.File{image}, promptgen.Edit(instruction))
	return result, domain.WrapService(task, err)
}

// GenerateOptions carries the optional knobs of text-to-image generation.
type GenerateOptions struct {
	NegativePrompt string
	Seed           *int64
}

// GenerateImage produces an image from a complete user-supplied prompt via
// the dedicated text-to-image endpoint.
func (s *Service) GenerateImage(ctx context.Context, prompt string, aspect domain.AspectRatio, opts GenerateOptions) (*Result, error) {
	const task = "generate image"
	images, err := s.client.GenerateImages(ctx, genai.ImageRequest{
		Prompt:         prompt,
		AspectRatio:    aspect,
		NegativePrompt: opts.NegativePrompt,
		Seed:           opts.Seed,
		SampleCount:    1,
	})
	if err != nil {
		return nil, domain.WrapService(task, err)
	}
	if len(images) == 0 {
		return nil, domain.WrapService(task, domain.ErrNoImage)
	}
	s.logger.Debug().Str("task", task).Str("aspect", aspect.String()).Msg("studio: image generated")
	return &Result{Data: images[0].Data, MIME: images[0].MimeType}, nil
}

// CopyStyleOptions selects the style attributes to transfer.
type CopyStyleOptions struct {
	CopyProductStyle    bool
	CopyBackgroundStyle bool
	Transparent         bool
	Prompt              string
}

// CopyStyle transfers photographic style from one to five reference images
// onto the target product shot. At least one toggle must be enabled; the
// check runs before any encoding or network traffic.
func (s *Service) CopyStyle(ctx context.Context, sources []imgio.File, target imgio.File, opts CopyStyleOptions) (*Result, error) {
	const task = "copy style"
	if !opts.CopyProductStyle && !opts.CopyBackgroundStyle && !opts.Transparent {
		return nil, domain.WrapService(task, fmt.Errorf("%w: enable at least one style-copy option", domain.ErrInvalidSelection))
	}
	if err := validateReferenceCount(len(sources)); err != nil {
		return nil, domain.WrapService(task, err)
	}
	prompt := promptgen.StyleCopy(promptgen.StyleCopyOptions{
		CopyProductStyle:    opts.CopyProductStyle,
		CopyBackgroundStyle: opts.CopyBackgroundStyle,
		Transparent:         opts.Transparent,
		Addendum:            opts.Prompt,
	})
	result, err := s.generateFromParts(ctx, task, append(append([]imgio.File{}, sources...), target), prompt)
	return result, domain.WrapService(task, err)
}

// GenerateStyledBackground creates a new background scene blending the
// style of the reference images.
func (s *Service) GenerateStyledBackground(ctx context.Context, sources []imgio.File, addendum string) (*Result, error) {
	const task = "generate styled background"
	if err := validateReferenceCount(len(sources)); err != nil {
		return nil, domain.WrapService(task, err)
	}
	result, err := s.generateFromParts(ctx, task, sources, promptgen.StyledBackground(addendum))
	return result, domain.WrapService(task, err)
}

// CompositeOptions controls compositing onto a provided background.
type CompositeOptions struct {
	CopyProductStyle  bool
	SourceStyleImages []imgio.File
}

// CompositeOntoBackground places the product onto a user-supplied background
// image, optionally re-lighting it to match additional style references.
func (s *Service) CompositeOntoBackground(ctx context.Context, target, background imgio.File, opts CompositeOptions) (*Result, error) {
	const task = "composite onto background"
	files := []imgio.File{target, background}
	files = append(files, opts.SourceStyleImages...)
	prompt := promptgen.CompositeOntoBackground(opts.CopyProductStyle)
	result, err := s.generateFromParts(ctx, task, files, prompt)
	return result, domain.WrapService(task, err)
}

// DescribeProduct asks the provider for a schema-constrained JSON
// description of the product and parses it into the seven-field record.
func (s *Service) DescribeProduct(ctx context.Context, image imgio.File) (*domain.ProductDetails, error) {
	const task = "describe product"
	cfg := &genai.GenerationConfig{
		CandidateCount:   1,
		ResponseMimeType: "application/json",
		ResponseSchema: genai.StringObjectSchema(
			"specifications",
			"usageInstructions",
			"compatibility",
			"maintenanceTips",
			"performanceMetrics",
			"warranty",
			"status",
		),
	}
	parts := append(encodeParts([]imgio.File{image}), genai.TextPart(promptgen.Describe()))
	resp, err := s.client.GenerateContent(ctx, parts, cfg)
	if err != nil {
		return nil, domain.WrapService(task, err)
	}
	text := genai.FirstText(resp)
	if text == "" {
		return nil, domain.WrapService(task, fmt.Errorf("%w: empty response body", domain.ErrMalformedResponse))
	}
	var details domain.ProductDetails
	if err := json.Unmarshal([]byte(text), &details); err != nil {
		return nil, domain.WrapService(task, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err))
	}
	return &details, nil
}

// generateFromParts runs the shared request path: encode the input images,
// append the text part, issue one call, extract the first inline image.
func (s *Service) generateFromParts(ctx context.Context, task string, files []imgio.File, prompt string) (*Result, error) {
	parts := append(encodeParts(files), genai.TextPart(prompt))
	resp, err := s.client.GenerateContent(ctx, parts, &genai.GenerationConfig{CandidateCount: 1})
	if err != nil {
		return nil, err
	}
	img, err := genai.FirstInlineImage(resp)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("task", task).Int("inputs", len(files)).Msg("studio: image returned")
	return &Result{Data: img.Data, MIME: img.MimeType}, nil
}

// encodeParts base64-encodes the input files concurrently. Encodings fan out
// across goroutines with no ordering requirement, but the indexed slice
// reassembles the parts in original input order before the request is built.
func encodeParts(files []imgio.File) []genai.Part {
	parts := make([]genai.Part, len(files))
	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b64, detected := imgio.EncodeBytes(files[i].Data)
			mime := files[i].MIME
			if mime == "" {
				mime = detected
			}
			parts[i] = genai.ImagePart(b64, mime)
		}(i)
	}
	wg.Wait()
	return parts
}

func validateReferenceCount(n int) error {
	if n < minStyleReferences || n > maxStyleReferences {
		return fmt.Errorf("%w: between %d and %d reference images required, got %d",
			domain.ErrInvalidSelection, minStyleReferences, maxStyleReferences, n)
	}
	return nil
}
