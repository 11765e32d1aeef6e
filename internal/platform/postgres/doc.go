// Package postgres implements the store interfaces against PostgreSQL
// using the pgx driver through database/sql. Constraint violations are
// mapped onto the store package's sentinel errors so callers never
// inspect driver error codes.
package postgres
