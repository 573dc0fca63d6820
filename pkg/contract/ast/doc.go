// Package ast defines the document model for parsed contract files.
//
// The model has two layers. The generic layer (Node, Scalar, Mapping,
// Sequence) mirrors the YAML value tree with per-node source locations and
// preserved mapping key order. The typed layer (File) wraps a generic root
// mapping with a closed variant tag and typed accessors for the fields the
// semantic validators care about: a datasource declaration's name and a
// contract's datasource reference.
//
// Locations are used only for diagnostic attribution, never for control
// flow. All accessors fail gracefully: a missing or wrongly shaped field
// yields ok=false, never a panic, so validators can probe non-conforming
// files and keep going.
package ast
