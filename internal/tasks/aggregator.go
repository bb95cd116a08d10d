package tasks

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/kmx/internal/models"
	"github.com/desertthunder/kmx/internal/shared"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds in-flight item fetches when none is configured.
const DefaultConcurrency = 8

const indexSuffix = ".json"

// Fetcher performs an authenticated GET and decodes the JSON body into v.
//
// Implemented by [services.Client].
type Fetcher interface {
	Get(ctx context.Context, path string, v any) error
}

// Renderer executes a named template. Implemented by [formatter.Renderer].
type Renderer interface {
	Render(w io.Writer, id string, data any) error
}

// ListAggregator fetches an index resource, fetches every item it names, and renders the sorted set.
type ListAggregator struct {
	client      Fetcher
	renderer    Renderer
	concurrency int
	logger      *log.Logger
}

// NewListAggregator creates an aggregator. A non-positive concurrency uses [DefaultConcurrency].
func NewListAggregator(client Fetcher, renderer Renderer, concurrency int, logger *log.Logger) *ListAggregator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ListAggregator{
		client:      client,
		renderer:    renderer,
		concurrency: concurrency,
		logger:      logger.WithPrefix("aggregator"),
	}
}

// ItemPath derives an item resource path from its index path: the trailing ".json" becomes "/"
// and the escaped id plus ".json" is appended, so "/api/topics.json" and "orders" give "/api/topics/orders.json".
func ItemPath(indexPath, id string) (string, error) {
	if !strings.HasSuffix(indexPath, indexSuffix) {
		return "", fmt.Errorf("%w: index path %q must end in %s", shared.ErrInvalidInput, indexPath, indexSuffix)
	}
	return strings.TrimSuffix(indexPath, indexSuffix) + "/" + url.PathEscape(id) + indexSuffix, nil
}

// FetchIndex retrieves the identifier list at indexPath.
func (a *ListAggregator) FetchIndex(ctx context.Context, indexPath string) (models.Index, error) {
	if !strings.HasSuffix(indexPath, indexSuffix) {
		return nil, fmt.Errorf("%w: index path %q must end in %s", shared.ErrInvalidInput, indexPath, indexSuffix)
	}

	var index models.Index
	if err := a.client.Get(ctx, indexPath, &index); err != nil {
		return nil, fmt.Errorf("failed to fetch index %s: %w", indexPath, err)
	}
	return index, nil
}

// Collect fetches the index at indexPath and then every item it lists, concurrently.
//
// Items are gathered in completion order and returned sorted by name once all of them arrived.
// The first failed fetch cancels the remaining ones and its error is returned. Duplicate ids yield duplicate items.
func (a *ListAggregator) Collect(ctx context.Context, indexPath string, progress chan<- ProgressUpdate) ([]models.Item, error) {
	sendProgress(progress, fetchIndexUpdate(indexPath))

	index, err := a.FetchIndex(ctx, indexPath)
	if err != nil {
		return nil, err
	}

	total := len(index)
	sendProgress(progress, foundIndexUpdate(indexPath, total))
	a.logger.Debug("fetched index", "path", indexPath, "items", total)

	items := make([]models.Item, 0, total)
	if total == 0 {
		return items, nil
	}

	paths := make([]string, total)
	for i, id := range index {
		if paths[i], err = ItemPath(indexPath, id); err != nil {
			return nil, err
		}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for _, itemPath := range paths {
		g.Go(func() error {
			var item models.Item
			if err := a.client.Get(gctx, itemPath, &item); err != nil {
				return fmt.Errorf("failed to fetch %s: %w", itemPath, err)
			}

			mu.Lock()
			items = append(items, item)
			n := len(items)
			mu.Unlock()

			sendProgress(progress, fetchItemUpdate(n, total, item.Name()))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Error("list aggregation failed", "path", indexPath, "error", err)
		return nil, err
	}

	if len(items) != total {
		return nil, fmt.Errorf("%w: got %d of %d items", shared.ErrIncompleteList, len(items), total)
	}

	models.SortByName(items)
	return items, nil
}

// RenderItems renders items as a [models.ListView] with the template tmplID.
func (a *ListAggregator) RenderItems(w io.Writer, tmplID string, items []models.Item) error {
	if a.renderer == nil {
		return fmt.Errorf("%w: no renderer configured", shared.ErrServiceUnavailable)
	}
	if items == nil {
		items = []models.Item{}
	}
	return a.renderer.Render(w, tmplID, models.ListView{Elements: items})
}

// RenderList collects the list at indexPath, renders it to w with tmplID and then calls done, if set.
//
// Nothing is rendered and done is not called when any fetch fails.
func (a *ListAggregator) RenderList(ctx context.Context, w io.Writer, tmplID, indexPath string, done func()) error {
	return a.RenderListWithProgress(ctx, w, tmplID, indexPath, nil, done)
}

// RenderListWithProgress is [ListAggregator.RenderList] with progress reporting.
func (a *ListAggregator) RenderListWithProgress(
	ctx context.Context,
	w io.Writer,
	tmplID, indexPath string,
	progress chan<- ProgressUpdate,
	done func(),
) error {
	items, err := a.Collect(ctx, indexPath, progress)
	if err != nil {
		return err
	}

	sendProgress(progress, renderUpdate(len(items), tmplID))
	if err := a.RenderItems(w, tmplID, items); err != nil {
		return err
	}

	if done != nil {
		done()
	}
	return nil
}
