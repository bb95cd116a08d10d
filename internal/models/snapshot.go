package models

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot formats accepted by [Snapshot.Validate].
var SnapshotFormats = []string{"html", "json", "csv", "markdown", "txt", "yaml"}

// Snapshot is a rendered list persisted for later inspection.
type Snapshot struct {
	id         string
	sequence   int
	indexPath  string
	templateID string
	format     string
	itemCount  int
	body       string
	createdAt  time.Time
	updatedAt  time.Time
	deletedAt  *time.Time
}

// NewSnapshot creates a Snapshot with timestamps set to now. The ID is assigned by the repository.
func NewSnapshot(indexPath, templateID, format string, itemCount int, body string) *Snapshot {
	now := time.Now().UTC()
	return &Snapshot{
		indexPath:  indexPath,
		templateID: templateID,
		format:     format,
		itemCount:  itemCount,
		body:       body,
		createdAt:  now,
		updatedAt:  now,
	}
}

// LoadSnapshot rebuilds a Snapshot from stored columns.
func LoadSnapshot(id string, sequence int, indexPath, templateID, format string, itemCount int, body string, createdAt, updatedAt time.Time, deletedAt *time.Time) *Snapshot {
	return &Snapshot{
		id:         id,
		sequence:   sequence,
		indexPath:  indexPath,
		templateID: templateID,
		format:     format,
		itemCount:  itemCount,
		body:       body,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		deletedAt:  deletedAt,
	}
}

func (s *Snapshot) ID() string            { return s.id }
func (s *Snapshot) Sequence() int         { return s.sequence }
func (s *Snapshot) IndexPath() string     { return s.indexPath }
func (s *Snapshot) TemplateID() string    { return s.templateID }
func (s *Snapshot) Format() string        { return s.format }
func (s *Snapshot) ItemCount() int        { return s.itemCount }
func (s *Snapshot) Body() string          { return s.body }
func (s *Snapshot) CreatedAt() time.Time  { return s.createdAt }
func (s *Snapshot) UpdatedAt() time.Time  { return s.updatedAt }
func (s *Snapshot) DeletedAt() *time.Time { return s.deletedAt }

func (s *Snapshot) SetID(id string)            { s.id = id }
func (s *Snapshot) SetSequence(seq int)        { s.sequence = seq }
func (s *Snapshot) SetUpdatedAt(t time.Time)   { s.updatedAt = t }
func (s *Snapshot) SetBody(body string, n int) { s.body, s.itemCount = body, n }

// Validate checks required fields and the format name.
func (s *Snapshot) Validate() error {
	if s.id == "" {
		return fmt.Errorf("snapshot id is required")
	}
	if strings.TrimSpace(s.indexPath) == "" {
		return fmt.Errorf("snapshot index path is required")
	}
	if s.itemCount < 0 {
		return fmt.Errorf("snapshot item count must not be negative")
	}
	for _, f := range SnapshotFormats {
		if s.format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown snapshot format %q", s.format)
}
