package mock

import (
	"context"

	"github.com/fwojciec/pagewatch"
)

var _ pagewatch.DocumentConverter = (*DocumentConverter)(nil)

// DocumentConverter is a mock implementation of pagewatch.DocumentConverter.
type DocumentConverter struct {
	ConvertFn func(ctx context.Context, raw []byte) (string, error)
}

func (c *DocumentConverter) Convert(ctx context.Context, raw []byte) (string, error) {
	return c.ConvertFn(ctx, raw)
}
