// Package daemon wires the conversion pipeline, retention sweeper, and HTTP
// server into a single-instance background service.
package daemon
