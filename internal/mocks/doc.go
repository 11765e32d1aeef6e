// Package mocks provides hand-written mock implementations of the store
// and auth interfaces for use in tests. Each mock exposes function fields
// for per-test behavior overrides plus a map-backed default implementation.
package mocks
