package ports

import (
	"context"

	"goeda/domain/dataset"
)

// BatchReader loads one raw record batch from an external source. The
// returned batch preserves source column order and leaves cells as parsed
// values: numbers as float64, everything else as text, absent as nil.
//
// Implementations must not stamp an origin; the merge step owns that.
type BatchReader interface {
	ReadBatch(ctx context.Context, path string) (dataset.RecordBatch, error)
}
