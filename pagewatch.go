// Package pagewatch provides the change-detection engine of a web page
// monitoring service. Given freshly fetched content for a watch, it decides
// whether the content is a meaningful change relative to the previous check
// and produces the normalized text to store for future comparisons.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, difflib/).
package pagewatch

import "context"

// ChangeDetector turns fetched content into a change verdict.
type ChangeDetector interface {
	// Detect runs the content pipeline for one watch and one fetch.
	// The watch, settings and fetch are read-only snapshots; state changes
	// are reported only through the returned Result.
	// When skipUnchanged is set and the content checksum matches the
	// previous check, Detect returns ErrChecksumUnchanged.
	Detect(ctx context.Context, watch Watch, settings Settings, fetch FetchResult, skipUnchanged bool) (*Result, error)
}
