// Package fileops provides small, reusable file and identifier utilities
// shared across agentry's internal packages.
//
// The helpers here are deliberately free of application state: they take
// plain paths and strings and return values or errors. Path containment
// and boundary enforcement live in internal/boundary; this package only
// covers the generic pieces (home-directory expansion, identifier
// sanitization for generated tool names, and file size limits applied
// while scanning resource trees).
package fileops
