// Package testsupport provides shared helpers for package tests: per-test
// configurations with isolated temp directories and artifact fixtures.
package testsupport
