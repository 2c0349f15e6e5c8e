// Package postgres implements the persistence ports on PostgreSQL through
// database/sql and lib/pq. The schema lives in embedded goose migrations.
package postgres
