// Package inventory implements the vehicle lookups the assistant consults: Postgres,
// Elasticsearch, and a Redis read-through cache in front of either.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"dealer-assistant/internal/assistant/query"
	commonerrors "dealer-assistant/internal/common/errors"
	"dealer-assistant/internal/models"
)

// ErrLookupFailed is wrapped by every error a Source returns.
var ErrLookupFailed = errors.New("LOOKUP_FAILED")

// Source answers listing and count queries against available stock.
type Source interface {
	Find(ctx context.Context, q query.Query) ([]models.VehicleSummary, error)
	Count(ctx context.Context, q query.Query) (int, error)
}

func lookupFailed(source string, err error) error {
	return commonerrors.NewLookupFailureError(source, fmt.Errorf("%w: %w", ErrLookupFailed, err))
}
