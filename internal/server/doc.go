// Package server exposes the conversion pipeline over HTTP: the download
// endpoint, one-shot artifact delivery, and the small set of site support
// endpoints.
package server
