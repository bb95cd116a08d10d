package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/kmx/internal/formatter"
	"github.com/desertthunder/kmx/internal/models"
	"github.com/desertthunder/kmx/internal/shared"
	"github.com/desertthunder/kmx/internal/tasks"
)

// ListSource collects and renders aggregated lists. [tasks.ListAggregator] satisfies it.
type ListSource interface {
	Collect(ctx context.Context, indexPath string, progress chan<- tasks.ProgressUpdate) ([]models.Item, error)
	RenderItems(w io.Writer, tmplID string, items []models.Item) error
}

// ListHandler serves rendered lists at /lists.
type ListHandler struct {
	source ListSource
	logger *log.Logger
}

// NewListHandler creates a [ListHandler] backed by source.
func NewListHandler(source ListSource, logger *log.Logger) *ListHandler {
	return &ListHandler{source: source, logger: logger.WithPrefix("preview")}
}

func (h *ListHandler) Routes() []string {
	return []string{"/lists"}
}

func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.String()

	indexPath, ok, err := shared.ParameterByName("index", rawURL)
	if err != nil || !ok || indexPath == "" {
		http.Error(w, "missing index parameter", http.StatusBadRequest)
		return
	}

	tmplID, _, _ := shared.ParameterByName("template", rawURL)
	if tmplID == "" {
		tmplID = formatter.NormalizeID(formatter.TitleFromPath(indexPath))
	}

	items, err := h.source.Collect(r.Context(), indexPath, nil)
	if err != nil {
		h.fail(w, indexPath, err)
		return
	}

	var buf bytes.Buffer
	if err := h.source.RenderItems(&buf, tmplID, items); err != nil {
		h.fail(w, indexPath, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *ListHandler) fail(w http.ResponseWriter, indexPath string, err error) {
	status := StatusFor(err)
	h.logger.Error("list failed", "index", indexPath, "status", status, "error", err)
	http.Error(w, fmt.Sprintf("%s: %v", http.StatusText(status), err), status)
}

// StatusFor maps an aggregation error onto an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrUnauthorized), errors.Is(err, shared.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, shared.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
