// Package web implements the server-rendered HTML surface of the task
// board: form handlers, template rendering, flash messages, and CSRF
// protection. Handlers depend on the service layer only.
package web
