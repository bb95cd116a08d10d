// Package tasks aggregates list resources from the management API with real-time progress reporting.
//
// # List Aggregation
//
// [ListAggregator.Collect] fetches an index resource (a JSON array of identifiers such as /api/topics.json),
// derives one item path per identifier with [ItemPath] and fetches all items concurrently:
//
//  1. Index fetch through the [Fetcher] (normally [services.Client])
//  2. Item fetches on an errgroup bounded by the configured concurrency
//  3. Fan-in: items are appended under a mutex in completion order
//  4. Once every item arrived the set is sorted by name
//
// [ListAggregator.RenderList] renders the collected set through a [Renderer] and then runs an optional callback.
// A failed fetch cancels the in-flight requests and nothing is rendered.
//
// # Bulk Export
//
// [ListAggregator.BulkExport] runs several aggregations on a worker pool and writes one file per list plus a manifest.
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for the UI.
// Updates use select with default so a slow reader never blocks aggregation.
package tasks
