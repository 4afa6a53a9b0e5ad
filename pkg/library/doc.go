// Package library builds and queries the asset graph of one exported
// animation project.
//
// # Overview
//
// [New] takes a decoded [asset.Document] and runs a single synchronous
// construction pass over its categories in a fixed order: Bitmaps, Shapes,
// Texts, then Timelines. Every record becomes exactly one [asset.Asset],
// appended to its typed collection (input order is kept) and registered in
// the id lookup. Timeline records go through [asset.Classify] first; a
// container sets [Library.HasContainer] and a stage record becomes the
// library's [Library.Stage] (the last one wins).
//
// Construction is atomic. The graph is assembled privately and only
// returned when every record succeeded, so a malformed document never
// yields a partially built library.
//
// # Queries
//
// [Library.Lookup] resolves an asset by id and fails with an
// ASSET_NOT_FOUND error for unknown ids. [Library.CreateInstance] is the
// instance factory: it looks the asset up and delegates to
// [asset.Asset.Create], returning a fresh [asset.Instance] on every call.
//
// # Duplicate ids
//
// Ids are expected to be unique across all categories. By default a
// repeated id replaces the earlier entry in the lookup (the last record in
// processing order wins) and a warning is logged; both assets stay in their
// typed collections. Set [Options.Duplicates] to [DuplicatesReject] to fail
// construction with a DUPLICATE_ASSET error instead.
//
// # Teardown
//
// [Library.Teardown] releases the collections and the lookup. It is
// idempotent; every query made afterwards returns a LIBRARY_TORN_DOWN
// error.
//
// # Concurrency
//
// A constructed library never changes except through Teardown. All query
// methods are safe for concurrent use; Teardown takes exclusive access.
package library
