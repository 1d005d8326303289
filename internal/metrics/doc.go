// Package metrics registers the Prometheus collectors shared by the pipeline,
// the delivery gateway, and the retention sweeper.
package metrics
