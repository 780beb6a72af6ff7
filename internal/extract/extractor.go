// Package extract implements text extraction from validated .pptx uploads.
package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"slidetext/internal/config"
	"slidetext/internal/domain"
	"slidetext/internal/pptx"
	"slidetext/internal/port"
)

// Markers appended to the output when a resource cap is hit. They are
// informational text, not errors.
const (
	slideCapMarkerFormat = "\n⚠️ Processing stopped at %d slides for performance\n"
	shapeCapMarker       = "⚠️ Too many shapes in slide, some content skipped\n"
)

const securityRestrictionMessage = "Error: File processing failed due to security restrictions"

// maxSurfacedErrorLen caps how much of an underlying error message reaches
// the caller.
const maxSurfacedErrorLen = 100

type pptxExtractor struct {
	limits *config.LimitsConfig
}

// NewExtractor creates a TextExtractor for .pptx uploads bounded by the
// configured limits.
func NewExtractor(limits *config.LimitsConfig) port.TextExtractor {
	return &pptxExtractor{limits: limits}
}

// Extract materializes the upload into a temporary file, opens it as a deck,
// and walks slides and shapes under the configured caps. The temporary file
// is removed on every exit path; a failed removal is logged and swallowed so
// it never masks the primary result.
func (e *pptxExtractor) Extract(ctx context.Context, upload *domain.Upload) (*domain.Extraction, error) {
	tmp, err := os.CreateTemp("", "slidetext-*.pptx")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrExtractionFailed, sanitizeMessage(err.Error()))
	}
	defer func() {
		_ = tmp.Close()
		if rmErr := os.Remove(tmp.Name()); rmErr != nil {
			log.Debug().Err(rmErr).Msg("extract: temp file cleanup failed")
		}
	}()

	if _, err := tmp.Write(upload.Data); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrExtractionFailed, sanitizeMessage(err.Error()))
	}

	deck, err := pptx.Open(tmp, int64(len(upload.Data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrParseFailed, sanitizeMessage(err.Error()))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sections []string
	slideCount := 0
	for i, slide := range deck.Slides {
		if i >= e.limits.MaxSlides {
			sections = append(sections, fmt.Sprintf(slideCapMarkerFormat, e.limits.MaxSlides))
			break
		}
		slideCount++
		sections = append(sections, e.slideText(slideCount, slide))
	}

	log.Debug().Str("file", upload.Name).Int("slides", slideCount).Msg("extract: deck processed")

	return &domain.Extraction{
		Text:       strings.Join(sections, "\n"),
		SlideCount: slideCount,
	}, nil
}

func (e *pptxExtractor) slideText(ordinal int, slide pptx.Slide) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- Slide %d ---\n", ordinal)

	for i, el := range slide.Elements {
		if i >= e.limits.MaxShapesPerSlide {
			b.WriteString(shapeCapMarker)
			break
		}
		text, ok := el.Text()
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		b.WriteString(FilterPrintable(truncateRunes(text, e.limits.MaxTextPerSlide)))
		b.WriteByte('\n')
	}
	return b.String()
}

// FilterPrintable strips control and other non-printable characters while
// keeping international letters, digits, punctuation, and whitespace. It is
// idempotent: filtered text passes through unchanged.
func FilterPrintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// sanitizeMessage converts an internal error message into one safe to show a
// caller. Messages that reveal filesystem layout (path separators or temp
// locations) are replaced wholesale; anything else is length-capped.
func sanitizeMessage(msg string) string {
	if strings.Contains(strings.ToLower(msg), "temp") || strings.ContainsAny(msg, `/\`) {
		return securityRestrictionMessage
	}
	return "Error: " + truncateRunes(msg, maxSurfacedErrorLen)
}
