package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/kmx/internal/models"
	"github.com/desertthunder/kmx/internal/shared"
)

var (
	_ list.Item = resourceItem{}
)

// resourceItem wraps [models.Item] to implement [list.Item].
type resourceItem struct {
	item models.Item
}

func (i resourceItem) FilterValue() string { return i.item.Name() }

func (i resourceItem) Title() string {
	if name := i.item.Name(); name != "" {
		return name
	}
	return "(unnamed)"
}

// Description summarizes the well-known list fields; other resources fall back to their field names.
func (i resourceItem) Description() string {
	var parts []string
	if v, ok := i.item.Get("size"); ok {
		if n, ok := shared.ToFloat(v); ok {
			parts = append(parts, shared.HumanFileSize(n).String())
		}
	}
	if v, ok := i.item.Get("partition_count"); ok {
		if n, ok := shared.ToFloat(v); ok {
			parts = append(parts, fmt.Sprintf("%d partitions", int(n)))
		}
	}
	if v, ok := i.item.Get("message_count"); ok {
		if n, ok := shared.ToFloat(v); ok {
			parts = append(parts, fmt.Sprintf("%d messages", int64(n)))
		}
	}
	if len(parts) == 0 {
		return strings.Join(i.item.Keys(), ", ")
	}
	return strings.Join(parts, " • ")
}
