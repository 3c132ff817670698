package pagewatch

import (
	"context"
	"time"
)

// WatchState is the persisted outcome of the previous checks of a watch.
type WatchState struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	URL               string    `json:"url"`
	Title             string    `json:"title"`
	ContentType       string    `json:"contentType"`
	StatusCode        int       `json:"statusCode"`
	Digest            string    `json:"digest"`
	PrefilterChecksum string    `json:"prefilterChecksum"`
	PrefilterText     string    `json:"prefilterText"`
	HasLDJSONPrice    bool      `json:"hasLdjsonPrice"`
	Snapshots         int       `json:"snapshots"`
	CreatedAt         time.Time `json:"createdAt"`
	CheckedAt         time.Time `json:"checkedAt"`
}

// Validate returns an error if the state contains invalid fields.
func (s *WatchState) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "watch name required")
	}
	if s.URL == "" {
		return Errorf(EINVALID, "watch URL required")
	}
	return nil
}

// ApplyTo copies the recorded state into a watch snapshot before a check.
func (s *WatchState) ApplyTo(w *Watch) {
	w.ID = s.ID
	w.PreviousDigest = s.Digest
	w.PrefilterChecksum = s.PrefilterChecksum
	w.PrefilterText = s.PrefilterText
	w.HasHistory = s.Snapshots > 0
	if w.Title == "" {
		w.Title = s.Title
	}
}

// Snapshot is the stored text of one check.
type Snapshot struct {
	ID        string    `json:"id"`
	WatchID   string    `json:"watchId"`
	Digest    string    `json:"digest"`
	Text      string    `json:"text"`
	Changed   bool      `json:"changed"`
	CreatedAt time.Time `json:"createdAt"`
}

// WatchStateService represents a service for managing watch state and
// snapshot history.
type WatchStateService interface {
	// CreateWatchState creates a new watch state.
	CreateWatchState(ctx context.Context, state *WatchState) error

	// FindWatchStateByName retrieves a watch state by name.
	// Returns ENOTFOUND if the watch does not exist.
	FindWatchStateByName(ctx context.Context, name string) (*WatchState, error)

	// FindWatchStates retrieves all watch states ordered by name.
	FindWatchStates(ctx context.Context) ([]*WatchState, error)

	// RecordCheck applies a pipeline result to the watch. A snapshot is
	// stored when the result changed or the watch has no snapshot yet.
	// Returns ENOTFOUND if the watch does not exist.
	RecordCheck(ctx context.Context, id string, result *Result) error

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	WatchID string

	Offset int
	Limit  int
}
