// Package postgres implements the internal/store interfaces on
// PostgreSQL. The card's table-per-subtype layout lives here: every
// write keeps the base row and its single extension row in step, and
// constraint violations are mapped to the store package's sentinel
// errors by name.
package postgres
