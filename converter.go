package pagewatch

import "context"

// DocumentConverter converts binary documents, such as PDF files, to markup.
type DocumentConverter interface {
	// Convert returns the markup produced for raw.
	// Returns *ToolNotFoundError if the conversion tool is not installed.
	// The context bounds the conversion; implementations also apply their
	// own timeout.
	Convert(ctx context.Context, raw []byte) (string, error)
}
