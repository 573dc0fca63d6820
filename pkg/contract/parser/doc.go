// Package parser turns raw contract YAML text into typed, location-tracked
// files and accumulates them for cross-file semantic validation.
//
// The pipeline per document is: variable resolution (pure text transform) →
// YAML tree building with per-node locations → top-level shape check →
// file-kind classification → registry append → plugin contribution pass.
// Failures at any stage are reported into the caller's diagnostics sink and
// never abort the session; a broken file is dropped while later files still
// parse.
//
// One Parser instance serves one sequential parsing session. Its
// configuration (resolver, plugins) is immutable after construction; its
// file registry is not, so sharing an instance across goroutines requires
// external locking.
package parser
