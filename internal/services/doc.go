// Package services defines the shared error taxonomy and context plumbing
// used across tubeconv components.
//
// Errors raised by the pipeline are tagged with sentinel markers (invalid
// input, external tool failure, missing artifact, timeout) so the HTTP
// boundary can map them to status codes without string matching. Context
// helpers carry the per-request correlation identifier that ties log lines
// to the artifact filename prefix.
package services
