// Package catalog models the booster catalog: the starter projects offered to
// the user, classified by mission and runtime.
//
// # Layout
//
// A catalog is a directory tree, read through a go-billy filesystem so that a
// local checkout, a git clone and an object storage download are handled the
// same way:
//
//	metadata.yaml                         missions and runtimes
//	<mission>/<runtime>/booster.yaml      one booster
//	<mission>/<runtime>/<version>/booster.yaml
//
// # Queries
//
// Boosters are selected with Filter predicates composed with And. Catalog
// answers the questions the wizard asks: which runtimes exist for a mission,
// which booster matches a mission and runtime pair.
package catalog
