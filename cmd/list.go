package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/kmx/internal/formatter"
	"github.com/desertthunder/kmx/internal/models"
	"github.com/desertthunder/kmx/internal/shared"
	"github.com/desertthunder/kmx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// List aggregates an index resource and writes it in the requested format.
//
// With --save the output is also stored as a snapshot for the history commands.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	indexPath, err := requirePath(cmd, "index-path")
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	title := formatter.TitleFromPath(indexPath)
	tmplID := cmd.String("template")
	if tmplID == "" {
		tmplID = formatter.NormalizeID(title)
	}
	if format == formatter.FormatHTML && !r.renderer.Has(tmplID) {
		return fmt.Errorf("%w: %s (see 'kmx templates')", shared.ErrTemplateNotFound, tmplID)
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	go r.logProgress(progress)

	items, err := r.aggregator.Collect(ctx, indexPath, progress)
	close(progress)
	if err != nil {
		return err
	}

	data, err := r.renderList(format, tmplID, title, items, cmd.StringSlice("column"))
	if err != nil {
		return err
	}

	if out := cmd.String("output"); out != "" {
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		r.logger.Info("list written", "path", out, "items", len(items))
	} else if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !cmd.Bool("save") {
		return nil
	}
	return r.saveSnapshot(indexPath, tmplID, format, items, data)
}

func (r *Runner) renderList(format formatter.Format, tmplID, title string, items []models.Item, columns []string) ([]byte, error) {
	if format != formatter.FormatHTML {
		return formatter.Export(format, items, formatter.ExportOptions{Title: title, Columns: columns})
	}

	var buf bytes.Buffer
	if err := r.aggregator.RenderItems(&buf, tmplID, items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Runner) saveSnapshot(indexPath, tmplID string, format formatter.Format, items []models.Item, data []byte) error {
	repo, closeDB, err := r.openSnapshots()
	if err != nil {
		return err
	}
	defer closeDB()

	snapshot := models.NewSnapshot(indexPath, tmplID, string(format), len(items), string(data))
	if err := repo.Create(snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	r.logger.Info("snapshot saved", "id", snapshot.ID(), "sequence", snapshot.Sequence())
	return nil
}

func (r *Runner) logProgress(progress <-chan tasks.ProgressUpdate) {
	for update := range progress {
		r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
	}
}

// Export aggregates every index path given as an argument into its own file.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("%w: at least one index path is required", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 32)
	go r.logProgress(progress)

	result, err := r.aggregator.BulkExport(ctx, progress, paths, tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
	})
	close(progress)
	if err != nil {
		return err
	}

	r.writePlainHeader("Export Summary")
	for _, res := range result.Results {
		if res.Success {
			r.writePlain("✓ %s → %s (%d items)\n", res.IndexPath, res.File, res.Items)
		} else {
			r.writePlain("✗ %s: %s\n", res.IndexPath, res.Message)
		}
	}
	r.writePlainln("%d/%d lists exported to %s", result.SuccessfulExports, result.TotalLists, result.OutputDirectory)

	if result.FailedExports > 0 {
		return fmt.Errorf("%w: %d of %d lists failed", shared.ErrIncompleteList, result.FailedExports, result.TotalLists)
	}
	return nil
}
