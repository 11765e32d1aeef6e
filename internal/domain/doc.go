// Package domain defines the core business entities of the task board:
// users and the tasks they own, along with entity-level validation.
package domain
