// Package findings defines the persisted form of parse and validation
// diagnostics.
//
// A diagnostic emitted during a run is transient; a Finding is its durable
// record, stamped with a validation session ID so whole runs can be queried,
// compared, and pruned. Subpackages provide the recorder (diagnostic to
// finding conversion), storage backends (memory, SQLite), and retention
// pruning.
package findings
