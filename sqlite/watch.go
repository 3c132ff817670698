package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/pagewatch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagewatch.WatchStateService = (*WatchStateService)(nil)

// WatchStateService implements pagewatch.WatchStateService using SQLite.
type WatchStateService struct {
	db  *DB
	now func() time.Time
}

// NewWatchStateService creates a new WatchStateService.
func NewWatchStateService(db *DB) *WatchStateService {
	return &WatchStateService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

const watchStateColumns = `id, name, url, title, content_type, status_code, digest,
	prefilter_checksum, prefilter_text, has_ldjson_price, snapshots, created_at, checked_at`

// CreateWatchState creates a new watch state.
func (s *WatchStateService) CreateWatchState(ctx context.Context, state *pagewatch.WatchState) error {
	if err := state.Validate(); err != nil {
		return err
	}

	state.ID = uuid.New().String()
	state.CreatedAt = s.now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO watch_states (id, name, url, title, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, state.ID, state.Name, state.URL, state.Title, formatTime(state.CreatedAt))
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return pagewatch.Errorf(pagewatch.EINVALID, "watch %q already exists", state.Name)
	}
	return err
}

// FindWatchStateByName retrieves a watch state by name.
func (s *WatchStateService) FindWatchStateByName(ctx context.Context, name string) (*pagewatch.WatchState, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+watchStateColumns+` FROM watch_states WHERE name = ?`, name)
	state, err := scanWatchState(row)
	if err == sql.ErrNoRows {
		return nil, pagewatch.Errorf(pagewatch.ENOTFOUND, "watch not found")
	}
	return state, err
}

// FindWatchStates retrieves all watch states ordered by name.
func (s *WatchStateService) FindWatchStates(ctx context.Context) ([]*pagewatch.WatchState, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+watchStateColumns+` FROM watch_states ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []*pagewatch.WatchState
	for rows.Next() {
		state, err := scanWatchState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, rows.Err()
}

// RecordCheck applies a pipeline result to the watch state and stores a
// snapshot when the result changed or the watch has none yet. Empty update
// fields leave the stored values untouched.
func (s *WatchStateService) RecordCheck(ctx context.Context, id string, result *pagewatch.Result) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+watchStateColumns+` FROM watch_states WHERE id = ?`, id)
	state, err := scanWatchState(row)
	if err == sql.ErrNoRows {
		return pagewatch.Errorf(pagewatch.ENOTFOUND, "watch not found")
	}
	if err != nil {
		return err
	}

	upd := result.Update
	if upd.ContentType != "" {
		state.ContentType = upd.ContentType
	}
	if upd.StatusCode != 0 {
		state.StatusCode = upd.StatusCode
	}
	if upd.PrefilterChecksum != "" {
		state.PrefilterChecksum = upd.PrefilterChecksum
	}
	if upd.Title != nil {
		state.Title = *upd.Title
	}
	if upd.HasLDJSONPrice != nil {
		state.HasLDJSONPrice = *upd.HasLDJSONPrice
	}
	state.Digest = upd.Digest
	state.PrefilterText = upd.PrefilterText
	state.CheckedAt = s.now()

	if result.Changed || state.Snapshots == 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO snapshots (id, watch_id, digest, text, changed, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), id, upd.Digest, string(result.Text), result.Changed, formatTime(state.CheckedAt))
		if err != nil {
			return err
		}
		state.Snapshots++
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE watch_states
		SET title = ?, content_type = ?, status_code = ?, digest = ?, prefilter_checksum = ?,
			prefilter_text = ?, has_ldjson_price = ?, snapshots = ?, checked_at = ?
		WHERE id = ?
	`, state.Title, state.ContentType, state.StatusCode, state.Digest, state.PrefilterChecksum,
		state.PrefilterText, state.HasLDJSONPrice, state.Snapshots, formatTime(state.CheckedAt), id)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *WatchStateService) FindSnapshots(ctx context.Context, filter pagewatch.SnapshotFilter) ([]*pagewatch.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, watch_id, digest, text, changed, created_at FROM snapshots WHERE 1=1")
	if filter.WatchID != "" {
		query.WriteString(" AND watch_id = ?")
		args = append(args, filter.WatchID)
	}
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*pagewatch.Snapshot
	for rows.Next() {
		var snap pagewatch.Snapshot
		var createdAt string
		if err := rows.Scan(&snap.ID, &snap.WatchID, &snap.Digest, &snap.Text, &snap.Changed, &createdAt); err != nil {
			return nil, err
		}
		if snap.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &snap)
	}
	return snapshots, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWatchState(row scanner) (*pagewatch.WatchState, error) {
	var state pagewatch.WatchState
	var createdAt, checkedAt string

	err := row.Scan(&state.ID, &state.Name, &state.URL, &state.Title, &state.ContentType,
		&state.StatusCode, &state.Digest, &state.PrefilterChecksum, &state.PrefilterText,
		&state.HasLDJSONPrice, &state.Snapshots, &createdAt, &checkedAt)
	if err != nil {
		return nil, err
	}

	if state.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if checkedAt != "" {
		if state.CheckedAt, err = parseRFC3339(checkedAt, "checked_at"); err != nil {
			return nil, err
		}
	}
	return &state, nil
}
