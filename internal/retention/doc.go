// Package retention reclaims disk space in the shared working directory by
// deleting artifacts older than a fixed threshold, whether or not they were
// ever downloaded.
package retention
