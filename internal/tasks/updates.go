package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchIndex Phase = iota
	FetchItems
	RenderList
	ExportList
)

func (p Phase) String() string {
	switch p {
	case FetchIndex:
		return "fetch_index"
	case FetchItems:
		return "fetch_items"
	case RenderList:
		return "render_list"
	case ExportList:
		return "export_list"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func fetchIndexUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchIndex,
		Step:    0,
		Total:   1,
		Message: fmt.Sprintf("Fetching index %s...", path),
	}
}

func foundIndexUpdate(path string, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchIndex,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d items in %s", total, path),
		Data:    total,
	}
}

func fetchItemUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchItems,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, name),
	}
}

func renderUpdate(total int, tmplID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RenderList,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Rendering %d items with %s...", total, tmplID),
	}
}

func exportingListUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, path),
	}
}

func exportCompletedUpdate(step, total int, path string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d items)", step, total, path, count),
	}
}

func exportFailedUpdate(step, total int, path string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, path, err),
	}
}
