// Package manager orchestrates the contract pipeline: loading files from
// disk, parsing and validating them, publishing the active set to a
// thread-safe registry, snapshotting it to a catalog, and reloading on file
// changes.
package manager
