package pagewatch

// Result is the outcome of one pipeline run.
type Result struct {
	Changed bool
	Update  Update

	// Text is the snapshot to persist: after diff-scope rewriting, before
	// ignore-text stripping, replaced by the matches when extraction rules
	// are configured.
	Text []byte
}

// Update holds the watch fields to persist after a check.
// Zero values mean the field is not updated.
type Update struct {
	ContentType string
	StatusCode  int

	// Digest is the checksum of the fully normalized text.
	Digest string

	// PrefilterChecksum is the checksum of the content before any filter.
	PrefilterChecksum string

	// PrefilterText is the extracted text before diff-scope rewriting,
	// the baseline for the next diff-scoped comparison.
	PrefilterText string

	Title          *string
	HasLDJSONPrice *bool
}
