// Package models defines the resources returned by the management API and the persisted entities of kmx.
//
// The package contains two categories of types:
//
// 1. Resources: JSON documents fetched from the API
//   - [Index] : ordered identifiers naming child resources (e.g. /api/topics.json)
//   - [Item] : one child resource, sortable by its "name" field
//   - [ListView] : the data handed to list templates
//
// 2. Persistent Entities: database-backed models with full lifecycle management
//   - [Snapshot] : a rendered list kept for later inspection
//
// Persistent entities implement the [Model] interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
