// package formatter renders aggregated list resources: HTML through named templates,
// and exports to CSV, Markdown, plain text, JSON and YAML.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/desertthunder/kmx/internal/models"
	"github.com/desertthunder/kmx/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format names an output format for a rendered list.
type Format string

const (
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatYAML     Format = "yaml"
)

// ParseFormat validates s against [models.SnapshotFormats]. "md", "text" and "yml" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "html":
		return FormatHTML, nil
	case "md":
		return FormatMarkdown, nil
	case "text":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	}
	for _, f := range models.SnapshotFormats {
		if strings.EqualFold(s, f) {
			return Format(f), nil
		}
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
}

// Extension returns the file extension used when writing f.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return "." + string(f)
}

// ExportOptions control the non-HTML exports.
type ExportOptions struct {
	// Title heads Markdown and text output.
	Title string
	// Columns selects item fields (dot paths allowed). Defaults to [DefaultColumns].
	Columns []string
}

// TitleFromPath derives a list title from an index path: "/api/topics.json" is "topics".
func TitleFromPath(indexPath string) string {
	base := path.Base(indexPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// DefaultColumns returns "name" followed by the remaining scalar fields present in any item, sorted.
func DefaultColumns(items []models.Item) []string {
	seen := map[string]bool{"name": true}
	cols := []string{"name"}
	var rest []string
	for _, item := range items {
		for _, k := range item.Keys() {
			if seen[k] {
				continue
			}
			switch item[k].(type) {
			case map[string]any, []any:
				continue
			}
			seen[k] = true
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(cols, rest...)
}

func (o ExportOptions) columns(items []models.Item) []string {
	if len(o.Columns) > 0 {
		return o.Columns
	}
	return DefaultColumns(items)
}

// Export encodes items in format. HTML needs a [Renderer] and is rejected here.
func Export(format Format, items []models.Item, opts ExportOptions) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportToJSON(items)
	case FormatCSV:
		return ExportToCSV(items, opts.columns(items))
	case FormatMarkdown:
		return ExportToMarkdown(items, opts.Title, opts.columns(items))
	case FormatText:
		return ExportToText(items, opts.Title)
	case FormatYAML:
		return ExportToYAML(items)
	default:
		return nil, fmt.Errorf("%w: %s export requires a template", shared.ErrInvalidInput, format)
	}
}

// ExportToJSON encodes items as the list view ({"elements": [...]}).
func ExportToJSON(items []models.Item) ([]byte, error) {
	if items == nil {
		items = []models.Item{}
	}
	return shared.MarshalJSON(models.ListView{Elements: items}, true)
}

// ExportToYAML encodes items as the list view with two-space indentation.
func ExportToYAML(items []models.Item) ([]byte, error) {
	if items == nil {
		items = []models.Item{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"elements": items}); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportToCSV writes one header row of columns, then one row per item.
func ExportToCSV(items []models.Item, columns []string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range items {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = item.String(col)
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a heading, an item count and a table.
func ExportToMarkdown(items []models.Item, title string, columns []string) ([]byte, error) {
	var buf bytes.Buffer

	if title != "" {
		buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	}
	buf.WriteString(fmt.Sprintf("**Items**: %d\n\n", len(items)))

	if len(items) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| " + strings.Join(columns, " | ") + " |\n")
	buf.WriteString("|" + strings.Repeat(" --- |", len(columns)) + "\n")
	for _, item := range items {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = markdownCell(item, col)
		}
		buf.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return buf.Bytes(), nil
}

func markdownCell(item models.Item, col string) string {
	if col == "size" {
		if v, ok := item.Get(col); ok {
			if n, ok := shared.ToFloat(v); ok {
				return shared.HumanFileSize(n).String()
			}
		}
	}
	return strings.ReplaceAll(item.String(col), "|", `\|`)
}

// ExportToText lists items one per line with their size when known.
func ExportToText(items []models.Item, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title != "" {
		buf.WriteString(fmt.Sprintf("List: %s\n", title))
	}
	buf.WriteString(fmt.Sprintf("Items: %d\n\n", len(items)))

	for i, item := range items {
		line := fmt.Sprintf("%d. %s", i+1, item.Name())
		if v, ok := item.Get("size"); ok {
			if n, ok := shared.ToFloat(v); ok {
				line += fmt.Sprintf(" (%s)", shared.HumanFileSize(n))
			}
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// WriteExport writes data to filepath, defaulting to "{title}{ext}" for the format.
func WriteExport(data []byte, format Format, title, filepath string) (string, error) {
	if filepath == "" {
		if title == "" {
			title = "list"
		}
		filepath = title + format.Extension()
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return filepath, nil
}
