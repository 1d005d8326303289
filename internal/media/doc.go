// Package media holds the small domain vocabulary shared by the pipeline and
// the HTTP surface: target formats, content-type derivation, and the source
// URL predicate.
package media
