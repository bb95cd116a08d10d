// Package ui implements an interactive terminal browser for list resources using bubbletea's Elm architecture.
//
// The TUI moves through three views:
//  1. [LoadingView] : Aggregation progress while the index and its items are fetched
//  2. [ItemListView] : Items sorted by name, filterable, with a size and partition summary
//  3. [DetailView] : The selected item as indented JSON in a scrollable viewport
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the [tasks.ListAggregator], providing non-blocking status reporting.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
