package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/kmx/internal/models"
	"github.com/desertthunder/kmx/internal/shared"
	"github.com/urfave/cli/v3"
)

type snapshotSummary struct {
	ID         string    `json:"id"`
	Sequence   int       `json:"sequence"`
	IndexPath  string    `json:"index_path"`
	TemplateID string    `json:"template_id"`
	Format     string    `json:"format"`
	Items      int       `json:"items"`
	CreatedAt  time.Time `json:"created_at"`
}

func summarize(s *models.Snapshot) snapshotSummary {
	return snapshotSummary{
		ID:         s.ID(),
		Sequence:   s.Sequence(),
		IndexPath:  s.IndexPath(),
		TemplateID: s.TemplateID(),
		Format:     s.Format(),
		Items:      s.ItemCount(),
		CreatedAt:  s.CreatedAt(),
	}
}

// HistoryList prints stored snapshots, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.openSnapshots()
	if err != nil {
		return err
	}
	defer closeDB()

	snapshots, err := repo.List(map[string]any{
		"index_path": cmd.String("index"),
		"format":     cmd.String("format"),
		"limit":      int(cmd.Int("limit")),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		summaries := make([]snapshotSummary, len(snapshots))
		for i, s := range snapshots {
			summaries[i] = summarize(s)
		}
		return r.writeJSON(summaries, true)
	}

	if len(snapshots) == 0 {
		return r.writePlain("No snapshots stored.\n")
	}

	for _, s := range snapshots {
		r.writePlain("#%-4d %s  %-24s %-8s %4d items  %s\n",
			s.Sequence(), s.ID(), s.IndexPath(), s.Format(), s.ItemCount(), s.CreatedAt().Local().Format(time.DateTime))
	}
	return nil
}

// HistoryShow prints a snapshot found by id or sequence number.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	ref := cmd.StringArg("ref")
	if ref == "" {
		return fmt.Errorf("%w: snapshot id or sequence is required", shared.ErrMissingArgument)
	}

	repo, closeDB, err := r.openSnapshots()
	if err != nil {
		return err
	}
	defer closeDB()

	s, err := repo.Find(ref)
	if err != nil {
		return err
	}

	if !cmd.Bool("raw") {
		r.writePlainHeader(fmt.Sprintf("Snapshot #%d  %s", s.Sequence(), s.IndexPath()))
		r.writePlain("ID:       %s\n", s.ID())
		r.writePlain("Template: %s\n", s.TemplateID())
		r.writePlain("Format:   %s\n", s.Format())
		r.writePlain("Items:    %d\n", s.ItemCount())
		r.writePlain("Created:  %s\n\n", s.CreatedAt().Local().Format(time.DateTime))
	}
	return r.writePlain("%s", s.Body())
}

// HistoryDelete removes a snapshot found by id or sequence number.
func (r *Runner) HistoryDelete(ctx context.Context, cmd *cli.Command) error {
	ref := cmd.StringArg("ref")
	if ref == "" {
		return fmt.Errorf("%w: snapshot id or sequence is required", shared.ErrMissingArgument)
	}

	repo, closeDB, err := r.openSnapshots()
	if err != nil {
		return err
	}
	defer closeDB()

	s, err := repo.Find(ref)
	if err != nil {
		return err
	}
	if err := repo.Delete(s.ID()); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted snapshot #%d (%s)\n", s.Sequence(), s.ID())
}
