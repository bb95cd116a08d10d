package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/desertthunder/kmx/internal/models"
	"github.com/desertthunder/kmx/internal/shared"
)

var _ models.Repository[*models.Snapshot] = (*SnapshotRepository)(nil)

const snapshotColumns = `id, sequence, index_path, template_id, format, item_count, html, created_at, updated_at, deleted_at`

// SnapshotRepository implements models.Repository[*models.Snapshot] for rendered list snapshots.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create inserts a new snapshot with a generated ID and sequence
func (r *SnapshotRepository) Create(s *models.Snapshot) error {
	sequence, err := NextSequence(r.db, "snapshots")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	s.SetID(shared.GenerateID())
	s.SetSequence(sequence)

	if err := s.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO snapshots (id, sequence, index_path, template_id, format, item_count, html, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		s.ID(),
		s.Sequence(),
		s.IndexPath(),
		s.TemplateID(),
		s.Format(),
		s.ItemCount(),
		s.Body(),
		s.CreatedAt(),
		s.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

// Get retrieves a snapshot by ID, excluding soft-deleted snapshots
func (r *SnapshotRepository) Get(id string) (*models.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots WHERE id = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, id))
}

// GetBySequence retrieves a snapshot by its sequence number
func (r *SnapshotRepository) GetBySequence(sequence int) (*models.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots WHERE sequence = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, sequence))
}

// Find resolves a reference given on the command line: a sequence number or a full ID.
func (r *SnapshotRepository) Find(ref string) (*models.Snapshot, error) {
	if seq, err := strconv.Atoi(ref); err == nil {
		return r.GetBySequence(seq)
	}
	return r.Get(ref)
}

// Latest returns the most recent snapshot of indexPath
func (r *SnapshotRepository) Latest(indexPath string) (*models.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots
		WHERE index_path = ? AND deleted_at IS NULL
		ORDER BY sequence DESC LIMIT 1`
	return r.scan(r.db.QueryRow(query, indexPath))
}

// Update replaces the rendered body and item count of an existing snapshot
func (r *SnapshotRepository) Update(s *models.Snapshot) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	s.SetUpdatedAt(now)

	query := `
		UPDATE snapshots
		SET template_id = ?, format = ?, item_count = ?, html = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, s.TemplateID(), s.Format(), s.ItemCount(), s.Body(), now, s.ID())
	if err != nil {
		return fmt.Errorf("failed to update snapshot: %w", err)
	}
	return expectOne(result, s.ID())
}

// Delete soft-deletes a snapshot by ID
func (r *SnapshotRepository) Delete(id string) error {
	query := `UPDATE snapshots SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return expectOne(result, id)
}

// List retrieves snapshots matching the given criteria, newest first.
//
// Supported criteria: "index_path" (string), "format" (string), "limit" (int).
func (r *SnapshotRepository) List(criteria map[string]any) ([]*models.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots WHERE deleted_at IS NULL`
	args := []any{}

	if indexPath, ok := criteria["index_path"].(string); ok && indexPath != "" {
		query += " AND index_path = ?"
		args = append(args, indexPath)
	}

	if format, ok := criteria["format"].(string); ok && format != "" {
		query += " AND format = ?"
		args = append(args, format)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.Snapshot
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return snapshots, nil
}

func (r *SnapshotRepository) scan(row scanner) (*models.Snapshot, error) {
	var (
		id         string
		sequence   int
		indexPath  string
		templateID string
		format     string
		itemCount  int
		body       string
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	err := row.Scan(&id, &sequence, &indexPath, &templateID, &format, &itemCount, &body, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.LoadSnapshot(id, sequence, indexPath, templateID, format, itemCount, body, createdAt, updatedAt, deleted), nil
}

func expectOne(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSnapshotNotFound, id)
	}
	return nil
}
