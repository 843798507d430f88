package clubs

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("playerbase.services.clubs")

const clubColumn = "current_club"

// Store is the part of the player store that club standardization
// rewrites.
type Store interface {
	SelectDistinct(ctx context.Context, column string) ([]string, error)
	UpdateWhere(ctx context.Context, column, oldValue, newValue string) (int64, error)
}

type Result struct {
	// names rewritten by Normalize
	Normalized []Mapping
	// names merged into another spelling by Deduplicate
	Merged []Mapping
}

// Standardize normalizes every distinct current club in the store and
// then merges near-duplicate spellings into the first one seen, in
// ascending name order.
func Standardize(ctx context.Context, store Store, threshold float64) (Result, error) {
	ctx, span := tracer.Start(ctx, "Standardize")
	defer span.End()

	var result Result

	original, err := store.SelectDistinct(ctx, clubColumn)
	if err != nil {
		return Result{}, fmt.Errorf("list clubs: %w", err)
	}
	for _, club := range original {
		normalized := Normalize(club)
		if normalized == club {
			continue
		}
		if normalized == "" {
			slog.WarnContext(ctx, "club normalizes to an empty name, leaving it as is", "club", club)
			continue
		}
		_, err := store.UpdateWhere(ctx, clubColumn, club, normalized)
		if err != nil {
			return result, err
		}
		slog.InfoContext(ctx, "normalized club", "from", club, "to", normalized)
		result.Normalized = append(result.Normalized, Mapping{Original: club, Canonical: normalized})
	}

	current, err := store.SelectDistinct(ctx, clubColumn)
	if err != nil {
		return result, fmt.Errorf("list clubs: %w", err)
	}
	for _, mapping := range Deduplicate(current, threshold) {
		if mapping.Original == mapping.Canonical {
			continue
		}
		_, err := store.UpdateWhere(ctx, clubColumn, mapping.Original, mapping.Canonical)
		if err != nil {
			return result, err
		}
		slog.InfoContext(ctx, "merged club", "from", mapping.Original, "to", mapping.Canonical)
		result.Merged = append(result.Merged, mapping)
	}

	span.SetAttributes(
		attribute.Int("normalized", len(result.Normalized)),
		attribute.Int("merged", len(result.Merged)),
	)
	return result, nil
}
