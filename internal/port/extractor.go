package port

import (
	"context"

	"slidetext/internal/domain"
)

// TextExtractor turns an accepted upload into extracted slide text. The
// upload must already have passed validation; implementations do not
// re-validate.
type TextExtractor interface {
	Extract(ctx context.Context, upload *domain.Upload) (*domain.Extraction, error)
}
