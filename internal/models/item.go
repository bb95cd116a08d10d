package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Index is the identifier list served by an index resource such as /api/topics.json.
type Index []string

// Item is a single resource decoded from JSON. Templates address its fields directly ({{.name}}).
type Item map[string]any

// ListView is the data passed to list templates.
type ListView struct {
	Elements []Item `json:"elements"`
}

// Name returns the "name" field, or "" when absent or not a string.
func (i Item) Name() string {
	name, _ := i["name"].(string)
	return name
}

// Get returns the field at a dot separated path ("config.retention.ms" walks nested objects).
func (i Item) Get(path string) (any, bool) {
	var cur any = map[string]any(i)
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// String formats the field at path for plain-text output.
func (i Item) String(path string) string {
	v, ok := i.Get(path)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

// Keys returns the item's top-level field names in sorted order.
func (i Item) Keys() []string {
	keys := make([]string, 0, len(i))
	for k := range i {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortByName orders items ascending by [Item.Name]; items with equal names keep their relative order.
func SortByName(items []Item) {
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Name() < items[b].Name()
	})
}
