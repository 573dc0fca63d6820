// Package validator holds the cross-file semantic checks that run after all
// documents of a session have been structurally parsed.
//
// Semantic findings never drop files: the passes are purely additive
// diagnostic output over the registry snapshot. Two passes exist today,
// duplicate datasource declarations and unresolved datasource references,
// always in that order.
package validator
