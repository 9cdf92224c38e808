// Package promptgen assembles the natural-language instructions sent to the
// image model. Every builder is a pure function of its arguments so outputs
// can be snapshot-tested.
package promptgen

import (
	"fmt"
	"strings"

	"server/internal/domain"
)

// CanvasPhrase describes the output canvas for a given aspect ratio. The
// canvas is always bounded at 1500 pixels on its long edge.
func CanvasPhrase(aspect domain.AspectRatio) string {
	switch aspect {
	case domain.AspectLandscapeWide:
		return "1500 pixel wide landscape canvas with a 16:9 aspect ratio"
	case domain.AspectPortraitTall:
		return "1500 pixel tall portrait canvas with a 9:16 aspect ratio"
	case domain.AspectLandscapeStandard:
		return "1500 pixel wide landscape canvas with a 4:3 aspect ratio"
	case domain.AspectPortraitStandard:
		return "1500 pixel tall portrait canvas with a 3:4 aspect ratio"
	default:
		return "1500 by 1500 pixel square canvas"
	}
}

// Composite builds the instruction for placing an uploaded product into a
// generated scene. The transparent branch only isolates the product; the
// non-transparent branch requests the full five-step studio pipeline.
func Composite(backgroundText string, transparent bool, aspect domain.AspectRatio) string {
	canvas := CanvasPhrase(aspect)
	if transparent {
		parts := []string{
			"The attached image contains a product.",
			"Isolate the product from its background and place it alone on a fully transparent canvas.",
			"Preserve the product exactly as photographed: shape, texture, labels, and proportions must not change.",
			fmt.Sprintf("The final output must be a %s with a transparent background, with the product centered.", canvas),
		}
		return strings.Join(parts, " ")
	}

	parts := []string{
		"The attached image contains a product. Perform the following steps in order:",
		"1. Isolate the product from its original photo, preserving every physical detail.",
		fmt.Sprintf("2. Generate a new background scene matching this description: \"%s\".", strings.TrimSpace(backgroundText)),
		"3. Composite the isolated product onto the generated background.",
		"4. Integrate the product into the scene: harmonize lighting, color temperature, and reflections so it looks photographed in place.",
		"5. Add a soft, natural contact shadow beneath the product.",
		fmt.Sprintf("The final output must be a %s. Center the product and leave roughly 10%% padding on all sides.", canvas),
	}
	return strings.Join(parts, " ")
}

// Edit passes the user's free-text instruction through unchanged.
func Edit(instruction string) string {
	return instruction
}

// StyleCopyOptions selects which photographic attributes to transfer from
// the reference images onto the target product shot.
type StyleCopyOptions struct {
	CopyProductStyle    bool
	CopyBackgroundStyle bool
	Transparent         bool
	Addendum            string
}

const styleCopyDirective = "Primary directive: the target product's physical form, geometry, proportions, materials, and markings must remain exactly as photographed. Only transfer photographic style attributes such as lighting, color grading, and reflections from the reference images."

// StyleCopy builds the style-transfer instruction. The first images sent are
// the style references (one to five), the last image is the target product.
// The three toggles produce one of five mutually exclusive bodies; at least
// one toggle must be set, which the service layer validates up front.
func StyleCopy(opts StyleCopyOptions) string {
	var body string
	switch {
	case opts.Transparent && opts.CopyProductStyle:
		body = "Re-light and re-grade the product in the final image so it adopts the photographic style of the reference images, then isolate it onto a fully transparent background."
	case opts.Transparent:
		body = "Isolate the product from the final image onto a fully transparent background, untouched. Use the reference images only to judge which areas belong to the product itself."
	case opts.CopyProductStyle && opts.CopyBackgroundStyle:
		body = "Recreate the final image so that both the product's finish and the scene around it adopt the photographic style of the reference images: match their lighting setup, color grading, and reflection behavior throughout."
	case opts.CopyProductStyle:
		body = "Re-light and re-grade only the product in the final image to match the photographic style of the reference images. Keep the existing background as it is."
	default: // background style only
		body = "Replace the scene around the product in the final image with one matching the photographic style of the reference images. The product itself must remain untouched."
	}

	parts := []string{
		"The images before the last one are style references; the last image is the target product shot.",
		styleCopyDirective,
		body,
		fmt.Sprintf("The final output must be a %s.", CanvasPhrase(domain.AspectSquare)),
	}
	if addendum := strings.TrimSpace(opts.Addendum); addendum != "" {
		parts = append(parts, fmt.Sprintf("Additional instruction, which may override the defaults above: %s", addendum))
	}
	return strings.Join(parts, " ")
}

// StyledBackground asks for a brand-new background scene blending the
// texture, lighting, and mood of one to five reference images.
func StyledBackground(addendum string) string {
	parts := []string{
		"The attached images are style references.",
		"Generate a brand new photorealistic background scene whose texture, lighting, and overall mood is an even blend of all reference images.",
		"Do not reproduce any single reference literally and do not include any product in the scene.",
		fmt.Sprintf("The final output must be a %s.", CanvasPhrase(domain.AspectSquare)),
	}
	if addendum = strings.TrimSpace(addendum); addendum != "" {
		parts = append(parts, fmt.Sprintf("Additional instruction, which may override the defaults above: %s", addendum))
	}
	return strings.Join(parts, " ")
}

// CompositeOntoBackground places a product onto a user-supplied background.
// With relight set the product is first re-lit to match the style reference
// images; otherwise it is composited unchanged with only a contact shadow.
func CompositeOntoBackground(relight bool) string {
	parts := []string{
		"The first image is the product and the second image is the destination background.",
	}
	if relight {
		parts = append(parts,
			"Re-light and re-grade the product so its lighting, color grading, and reflections match the photographic style of the remaining reference images, then composite it onto the destination background.",
		)
	} else {
		parts = append(parts,
			"Composite the product onto the destination background without altering the product in any way: no re-lighting, no color changes, no warping.",
		)
	}
	parts = append(parts,
		"Add a soft, natural contact shadow where the product meets the surface so it sits convincingly in the scene.",
		fmt.Sprintf("The final output must be a %s.", CanvasPhrase(domain.AspectSquare)),
	)
	return strings.Join(parts, " ")
}

// Describe asks for the structured product description. The response format
// itself is constrained by the JSON schema attached to the request.
func Describe() string {
	return strings.Join([]string{
		"Analyze the product in the attached image and describe it for an e-commerce listing.",
		"Fill every field of the requested JSON object with concise, factual text.",
		"If a field cannot be determined from the image, state a reasonable assumption rather than leaving it empty.",
	}, " ")
}
