// Package db wraps the storage backends the service can run on. The concrete
// repositories take the underlying handles directly; this package only owns
// connection lifecycle and migrations.
package db

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

// DB is the common lifecycle of both backends.
type DB interface {
	Connect() error
	Disconnect() error
}
