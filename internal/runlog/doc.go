// Package runlog persists generation runs, their ordered pipeline events, and
// the latest subtitles saved for each webinar in SQLite.
//
// Runs are created when a request is accepted and finished once the pipeline
// or the alignment gate reaches a verdict. Events are append-only and keep the
// order they were emitted in. Webinar subtitle records are upserted by the
// caller's webinar id so the newest generation always wins.
//
// Schema changes bump schemaVersion in schema.go; older databases are refused
// rather than migrated.
package runlog
