package tasks

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/kmx/internal/formatter"
	"github.com/desertthunder/kmx/internal/shared"
	tu "github.com/desertthunder/kmx/internal/testing"
)

func bulkFetcher() *mockFetcher {
	return newMockFetcher(map[string]string{
		"/api/topics.json":           `["orders","payments"]`,
		"/api/topics/orders.json":    `{"name":"orders","size":2048}`,
		"/api/topics/payments.json":  `{"name":"payments","size":10}`,
		"/api/brokers.json":          `["1"]`,
		"/api/brokers/1.json":        `{"name":"broker-1","host":"kafka1","port":9092}`,
		"/api/consumers.json":        `["broken"]`,
		"/api/consumers/broken.json": `not json`,
	})
}

func TestBulkExport(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	tests := []struct {
		name        string
		format      formatter.Format
		paths       []string
		wantSuccess int
		wantFailed  int
		validate    func(t *testing.T, result *BulkExportResult, dir string)
	}{
		{
			name:        "single list json export",
			format:      formatter.FormatJSON,
			paths:       []string{"/api/topics.json"},
			wantSuccess: 1,
			validate: func(t *testing.T, result *BulkExportResult, dir string) {
				data := tu.MustReadFile(t, filepath.Join(dir, "topics.json"))
				if !strings.Contains(data, `"elements"`) || !strings.Contains(data, "payments") {
					t.Errorf("unexpected JSON export: %s", data)
				}
				if result.Results[0].Items != 2 {
					t.Errorf("expected 2 items, got %d", result.Results[0].Items)
				}
			},
		},
		{
			name:        "multiple lists csv export",
			format:      formatter.FormatCSV,
			paths:       []string{"/api/topics.json", "/api/brokers.json"},
			wantSuccess: 2,
			validate: func(t *testing.T, result *BulkExportResult, dir string) {
				tu.AssertFileExists(t, filepath.Join(dir, "topics.csv"))
				brokers := tu.MustReadFile(t, filepath.Join(dir, "brokers.csv"))
				if !strings.HasPrefix(brokers, "name,host,port\n") {
					t.Errorf("unexpected CSV header: %s", brokers)
				}
			},
		},
		{
			name:        "html export uses the list template",
			format:      formatter.FormatHTML,
			paths:       []string{"/api/topics.json"},
			wantSuccess: 1,
			validate: func(t *testing.T, result *BulkExportResult, dir string) {
				html := tu.MustReadFile(t, filepath.Join(dir, "topics.html"))
				if !strings.Contains(html, "2.0<small>kB</small>") {
					t.Errorf("expected rendered topics table, got %s", html)
				}
			},
		},
		{
			name:        "failed list is recorded",
			format:      formatter.FormatMarkdown,
			paths:       []string{"/api/topics.json", "/api/consumers.json"},
			wantSuccess: 1,
			wantFailed:  1,
			validate: func(t *testing.T, result *BulkExportResult, dir string) {
				tu.AssertFileExists(t, filepath.Join(dir, "topics.md"))
				if _, err := os.Stat(filepath.Join(dir, "consumers.md")); !os.IsNotExist(err) {
					t.Error("expected no file for the failed list")
				}
				for _, res := range result.Results {
					if res.IndexPath == "/api/consumers.json" && res.Message == "" {
						t.Error("expected failure message in result")
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			renderer, err := formatter.DefaultRenderer("en-US")
			if err != nil {
				t.Fatalf("DefaultRenderer failed: %v", err)
			}
			agg := NewListAggregator(bulkFetcher(), renderer, 2, logger)

			progress := make(chan ProgressUpdate, 32)
			result, err := agg.BulkExport(context.Background(), progress, tt.paths, BulkExportOpts{
				Format:     tt.format,
				OutputDir:  dir,
				NumWorkers: 2,
			})
			if err != nil {
				t.Fatalf("BulkExport failed: %v", err)
			}

			if result.SuccessfulExports != tt.wantSuccess {
				t.Errorf("expected %d successful exports, got %d", tt.wantSuccess, result.SuccessfulExports)
			}
			if result.FailedExports != tt.wantFailed {
				t.Errorf("expected %d failed exports, got %d", tt.wantFailed, result.FailedExports)
			}
			if result.TotalLists != len(tt.paths) || len(result.Results) != len(tt.paths) {
				t.Errorf("expected %d results, got %d", len(tt.paths), len(result.Results))
			}

			var manifest BulkExportResult
			if err := json.Unmarshal([]byte(tu.MustReadFile(t, result.ManifestPath)), &manifest); err != nil {
				t.Fatalf("invalid manifest: %v", err)
			}
			if manifest.SuccessfulExports != tt.wantSuccess {
				t.Errorf("manifest reports %d successes, want %d", manifest.SuccessfulExports, tt.wantSuccess)
			}

			tt.validate(t, result, dir)
		})
	}

	t.Run("Same Title In Different Paths", func(t *testing.T) {
		dir := t.TempDir()
		fetcher := newMockFetcher(map[string]string{
			"/a/topics.json":        `["orders"]`,
			"/a/topics/orders.json": `{"name":"orders"}`,
			"/b/topics.json":        `["audit"]`,
			"/b/topics/audit.json":  `{"name":"audit"}`,
		})
		agg := NewListAggregator(fetcher, nil, 2, logger)

		result, err := agg.BulkExport(context.Background(), nil, []string{"/a/topics.json", "/b/topics.json"}, BulkExportOpts{
			Format:     formatter.FormatCSV,
			OutputDir:  dir,
			NumWorkers: 2,
		})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}
		if result.SuccessfulExports != 2 {
			t.Fatalf("expected 2 successful exports, got %d", result.SuccessfulExports)
		}

		files := map[string]string{}
		for _, res := range result.Results {
			files[res.IndexPath] = res.File
		}
		if files["/a/topics.json"] == files["/b/topics.json"] {
			t.Fatalf("expected distinct files, both wrote %s", files["/a/topics.json"])
		}

		if got := tu.MustReadFile(t, filepath.Join(dir, "topics.csv")); !strings.Contains(got, "orders") {
			t.Errorf("expected /a list in topics.csv, got %q", got)
		}
		if got := tu.MustReadFile(t, filepath.Join(dir, "topics_2.csv")); !strings.Contains(got, "audit") {
			t.Errorf("expected /b list in topics_2.csv, got %q", got)
		}
	})

	t.Run("ExportNames", func(t *testing.T) {
		got := strings.Join(ExportNames([]string{"/a/topics.json", "/b/topics.json", "/brokers.json", "/c/topics.json", "/topics_2.json"}), ",")
		want := "topics,topics_2,brokers,topics_3,topics_2_2"
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		dir := t.TempDir()
		cwd, _ := os.Getwd()
		defer os.Chdir(cwd)
		os.Chdir(dir)

		agg := NewListAggregator(bulkFetcher(), nil, 1, logger)
		result, err := agg.BulkExport(context.Background(), nil, []string{"/api/topics.json"}, BulkExportOpts{NumWorkers: 50})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}
		if !strings.HasPrefix(result.OutputDirectory, "kmx_export_") {
			t.Errorf("expected default output directory, got %s", result.OutputDirectory)
		}
		tu.AssertFileExists(t, filepath.Join(dir, result.OutputDirectory, "topics.json"))
	})

	t.Run("Canceled Context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		agg := NewListAggregator(bulkFetcher(), nil, 1, logger)
		result, err := agg.BulkExport(ctx, nil, []string{"/api/topics.json"}, BulkExportOpts{OutputDir: t.TempDir()})
		if err == nil {
			t.Fatal("expected context error")
		}
		if result == nil || result.FailedExports != 1 {
			t.Errorf("expected the list to be recorded as failed, got %+v", result)
		}
	})
}
