package tasks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/kmx/internal/formatter"
	"github.com/desertthunder/kmx/internal/shared"
)

// BulkExportOpts contains configuration for exporting several lists at once.
type BulkExportOpts struct {
	Format     formatter.Format // Export format: html, json, csv, markdown, txt
	OutputDir  string           // Base output directory (default: kmx_export_{epoch})
	NumWorkers int              // Concurrent lists (default: 3, max: 10)
	Columns    []string         // Columns for csv and markdown exports
}

// ListExportResult is the outcome of exporting one index path.
type ListExportResult struct {
	IndexPath string `json:"index_path"`
	File      string `json:"file,omitempty"`
	Items     int    `json:"items"`
	Success   bool   `json:"success"`
	Error     error  `json:"-"`
	Message   string `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export. It is also written as the export manifest.
type BulkExportResult struct {
	TotalLists        int                `json:"total_lists"`
	SuccessfulExports int                `json:"successful_exports"`
	FailedExports     int                `json:"failed_exports"`
	OutputDirectory   string             `json:"output_directory"`
	ManifestPath      string             `json:"-"`
	CreatedAt         time.Time          `json:"created_at"`
	Results           []ListExportResult `json:"results"`
}

type exportJob struct {
	indexPath string
	name      string
}

// ExportNames returns one file base name per index path, in order.
//
// Names come from [formatter.TitleFromPath]; a title already taken gets a counter suffix,
// so "/a/topics.json" and "/b/topics.json" become "topics" and "topics_2".
func ExportNames(indexPaths []string) []string {
	names := make([]string, len(indexPaths))
	taken := make(map[string]bool, len(indexPaths))
	for i, p := range indexPaths {
		title := formatter.TitleFromPath(p)
		name := title
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s_%d", title, n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

// BulkExport aggregates every index path and writes each list to its own file in opts.OutputDir.
//
// Lists are processed by a small worker pool. A failed list is recorded in the result and does not stop the others.
// An export_manifest.json summarizing the run is written last.
func (a *ListAggregator) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	indexPaths []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("kmx_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalLists:      len(indexPaths),
		OutputDirectory: opts.OutputDir,
		CreatedAt:       time.Now().UTC(),
		Results:         make([]ListExportResult, 0, len(indexPaths)),
	}

	jobs := make(chan exportJob, len(indexPaths))
	results := make(chan ListExportResult, len(indexPaths))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go a.exportWorker(ctx, &wg, jobs, results, opts)
	}

	names := ExportNames(indexPaths)
	for i, p := range indexPaths {
		sendProgress(prog, exportingListUpdate(i+1, len(indexPaths), p))
		jobs <- exportJob{indexPath: p, name: names[i]}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		if res.Error != nil {
			res.Message = res.Error.Error()
		}
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(indexPaths), res.IndexPath, res.Items))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, len(indexPaths), res.IndexPath, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

func (a *ListAggregator) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- ListExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			results <- ListExportResult{IndexPath: job.indexPath, Error: ctx.Err()}
			continue
		default:
		}

		results <- a.exportList(ctx, job.indexPath, job.name, opts)
	}
}

func (a *ListAggregator) exportList(ctx context.Context, indexPath, name string, opts BulkExportOpts) ListExportResult {
	result := ListExportResult{IndexPath: indexPath}

	items, err := a.Collect(ctx, indexPath, nil)
	if err != nil {
		result.Error = err
		return result
	}
	result.Items = len(items)

	title := formatter.TitleFromPath(indexPath)
	var data []byte
	if opts.Format == formatter.FormatHTML {
		var buf bytes.Buffer
		if err := a.RenderItems(&buf, formatter.NormalizeID(title), items); err != nil {
			result.Error = fmt.Errorf("html export failed: %w", err)
			return result
		}
		data = buf.Bytes()
	} else {
		data, err = formatter.Export(opts.Format, items, formatter.ExportOptions{Title: title, Columns: opts.Columns})
		if err != nil {
			result.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
			return result
		}
	}

	file, err := formatter.WriteExport(data, opts.Format, title, filepath.Join(opts.OutputDir, name+opts.Format.Extension()))
	if err != nil {
		result.Error = err
		return result
	}

	result.File = file
	result.Success = true
	return result
}
