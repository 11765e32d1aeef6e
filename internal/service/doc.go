// Package service provides application-level services for registering and
// authenticating users and for managing tasks. Services orchestrate the
// domain and store layers; handlers call only into this package.
package service
